package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"homely_backend/platform/apperr"
	"homely_backend/platform/logger"
)

const (
	// MsgChatFailed is streamed as the only chunk when the model call fails.
	MsgChatFailed = "Sorry, I encountered an error. Please try again."

	msgSessionNotFound = "chat session not found"

	chatAppName      = "homely_chat"
	chatUserID       = "visitor"
	minSweepInterval = time.Minute
)

type chatEntry struct {
	// mu serialises turns; the session history is append-only.
	mu       sync.Mutex
	lastSeen time.Time
}

// ChatSessions owns the conversational assistant. Each session keeps its own
// history until it is closed or has been idle for longer than the TTL.
type ChatSessions struct {
	runner   *runner.Runner
	sessions session.Service
	ttl      time.Duration
	now      func() time.Time
	log      *logger.Logger

	mu      sync.Mutex
	entries map[string]*chatEntry
}

// NewChatSessions builds the chat agent on llm.
func NewChatSessions(llm model.LLM, ttl time.Duration, log *logger.Logger) (*ChatSessions, error) {
	chatAgent, err := llmagent.New(llmagent.Config{
		Name:        "HomelyAssistant",
		Model:       llm,
		Description: "Conversational assistant for property seekers.",
		Instruction: chatInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat agent: %w", err)
	}

	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        chatAppName,
		Agent:          chatAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat runner: %w", err)
	}

	return &ChatSessions{
		runner:   r,
		sessions: sessionService,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
		entries:  make(map[string]*chatEntry),
	}, nil
}

// Open starts a new conversation and returns its id.
func (c *ChatSessions) Open(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := c.sessions.Create(ctx, &session.CreateRequest{
		AppName:   chatAppName,
		UserID:    chatUserID,
		SessionID: id,
	})
	if err != nil {
		return "", fmt.Errorf("create chat session: %w", err)
	}

	c.mu.Lock()
	c.entries[id] = &chatEntry{lastSeen: c.now()}
	c.mu.Unlock()
	return id, nil
}

// Send runs one user turn and passes each streamed text fragment to onChunk.
// Upstream failures are reported to onChunk as MsgChatFailed and are not
// returned. Only an unknown session or a cancelled ctx produce an error.
func (c *ChatSessions) Send(ctx context.Context, id, prompt string, onChunk func(string)) error {
	entry, ok := c.lookup(id)
	if !ok {
		return apperr.NotFound(msgSessionNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	c.touch(entry)
	defer c.touch(entry)

	msg := &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt}},
	}

	sawPartial := false
	for event, err := range c.runner.Run(ctx, chatUserID, id, msg, agent.RunConfig{StreamingMode: agent.StreamingModeSSE}) {
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			c.log.UpstreamError(upstreamService, "chat", err)
			onChunk(MsgChatFailed)
			return nil
		}
		if event == nil {
			continue
		}
		text := eventText(event)
		if event.Partial {
			sawPartial = true
			if text != "" {
				onChunk(text)
			}
			continue
		}
		// The final event repeats the aggregated partials.
		if !sawPartial && text != "" {
			onChunk(text)
		}
	}
	return ctx.Err()
}

// Close ends a conversation and drops its history.
func (c *ChatSessions) Close(ctx context.Context, id string) error {
	c.mu.Lock()
	_, ok := c.entries[id]
	delete(c.entries, id)
	c.mu.Unlock()
	if !ok {
		return apperr.NotFound(msgSessionNotFound)
	}
	return c.drop(ctx, id)
}

// Len reports the number of open sessions.
func (c *ChatSessions) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Run expires idle sessions until ctx is cancelled.
func (c *ChatSessions) Run(ctx context.Context) error {
	if c.ttl <= 0 {
		<-ctx.Done()
		return nil
	}
	interval := max(c.ttl/2, minSweepInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := c.sweep(ctx); n > 0 {
				c.log.Info("expired idle chat sessions", "count", n)
			}
		}
	}
}

// sweep removes sessions idle for longer than the TTL. Sessions in the middle
// of a turn are skipped.
func (c *ChatSessions) sweep(ctx context.Context) int {
	cutoff := c.now().Add(-c.ttl)

	var expired []string
	c.mu.Lock()
	for id, entry := range c.entries {
		if !entry.mu.TryLock() {
			continue
		}
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(c.entries, id)
		}
		entry.mu.Unlock()
	}
	c.mu.Unlock()

	for _, id := range expired {
		if err := c.drop(ctx, id); err != nil {
			c.log.Warn("failed to drop chat session", "session_id", id, "error", err)
		}
	}
	return len(expired)
}

func (c *ChatSessions) drop(ctx context.Context, id string) error {
	err := c.sessions.Delete(ctx, &session.DeleteRequest{
		AppName:   chatAppName,
		UserID:    chatUserID,
		SessionID: id,
	})
	if err != nil {
		return fmt.Errorf("delete chat session: %w", err)
	}
	return nil
}

func (c *ChatSessions) lookup(id string) (*chatEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[id]
	return entry, ok
}

func (c *ChatSessions) touch(entry *chatEntry) {
	c.mu.Lock()
	entry.lastSeen = c.now()
	c.mu.Unlock()
}

func eventText(event *session.Event) string {
	if event.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range event.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
