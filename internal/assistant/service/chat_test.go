package service

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"homely_backend/platform/apperr"
	"homely_backend/platform/logger"
)

// scriptedLLM streams the configured chunks and records every request.
type scriptedLLM struct {
	chunks []string
	err    error

	mu       sync.Mutex
	requests []*model.LLMRequest
}

func (m *scriptedLLM) Name() string { return "scripted" }

func (m *scriptedLLM) GenerateContent(_ context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		m.mu.Lock()
		m.requests = append(m.requests, req)
		m.mu.Unlock()

		if m.err != nil {
			yield(nil, m.err)
			return
		}
		full := strings.Join(m.chunks, "")
		if stream {
			for _, chunk := range m.chunks {
				if !yield(&model.LLMResponse{Content: genai.NewContentFromText(chunk, genai.RoleModel), Partial: true}, nil) {
					return
				}
			}
		}
		yield(&model.LLMResponse{Content: genai.NewContentFromText(full, genai.RoleModel), TurnComplete: true}, nil)
	}
}

func (m *scriptedLLM) lastRequest() *model.LLMRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

func newTestChat(t *testing.T, llm model.LLM, ttl time.Duration) *ChatSessions {
	t.Helper()
	chat, err := NewChatSessions(llm, ttl, logger.Discard())
	if err != nil {
		t.Fatalf("NewChatSessions: %v", err)
	}
	return chat
}

func collect(t *testing.T, chat *ChatSessions, id, prompt string) []string {
	t.Helper()
	var chunks []string
	if err := chat.Send(context.Background(), id, prompt, func(s string) { chunks = append(chunks, s) }); err != nil {
		t.Fatalf("Send: %v", err)
	}
	return chunks
}

func TestChatStreamsPartialsWithoutDuplicatingFinal(t *testing.T) {
	llm := &scriptedLLM{chunks: []string{"Hello", ", how can ", "I help?"}}
	chat := newTestChat(t, llm, time.Hour)

	id, err := chat.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	chunks := collect(t, chat, id, "hi")
	if strings.Join(chunks, "") != "Hello, how can I help?" {
		t.Fatalf("unexpected chunks %q", chunks)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 streamed chunks, got %q", chunks)
	}
}

func TestChatUsesSystemInstruction(t *testing.T) {
	llm := &scriptedLLM{chunks: []string{"ok"}}
	chat := newTestChat(t, llm, time.Hour)

	id, _ := chat.Open(context.Background())
	collect(t, chat, id, "hi")

	req := llm.lastRequest()
	if req == nil || req.Config == nil || req.Config.SystemInstruction == nil {
		t.Fatalf("expected a system instruction on the request")
	}
	var sb strings.Builder
	for _, p := range req.Config.SystemInstruction.Parts {
		sb.WriteString(p.Text)
	}
	if !strings.Contains(sb.String(), "specializing in the Indian market") {
		t.Fatalf("unexpected instruction %q", sb.String())
	}
}

func TestChatKeepsHistoryPerSession(t *testing.T) {
	llm := &scriptedLLM{chunks: []string{"noted"}}
	chat := newTestChat(t, llm, time.Hour)
	ctx := context.Background()

	first, _ := chat.Open(ctx)
	collect(t, chat, first, "I like Pune")
	firstTurn := len(llm.lastRequest().Contents)
	collect(t, chat, first, "what did I say?")
	if got := len(llm.lastRequest().Contents); got <= firstTurn {
		t.Fatalf("expected history to grow, got %d contents after %d", got, firstTurn)
	}

	second, _ := chat.Open(ctx)
	collect(t, chat, second, "hello")
	if got := len(llm.lastRequest().Contents); got != firstTurn {
		t.Fatalf("new session should start empty, got %d contents", got)
	}
}

func TestChatUpstreamFailureEmitsFallback(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("503 from upstream")}
	chat := newTestChat(t, llm, time.Hour)

	id, _ := chat.Open(context.Background())
	chunks := collect(t, chat, id, "hi")
	if len(chunks) != 1 || chunks[0] != MsgChatFailed {
		t.Fatalf("expected single fallback chunk, got %q", chunks)
	}
}

func TestChatUnknownSession(t *testing.T) {
	chat := newTestChat(t, &scriptedLLM{}, time.Hour)

	err := chat.Send(context.Background(), "missing", "hi", func(string) {})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := chat.Close(context.Background(), "missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found on close, got %v", err)
	}
}

func TestChatCloseRemovesSession(t *testing.T) {
	chat := newTestChat(t, &scriptedLLM{chunks: []string{"ok"}}, time.Hour)
	ctx := context.Background()

	id, _ := chat.Open(ctx)
	if err := chat.Close(ctx, id); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if chat.Len() != 0 {
		t.Fatalf("expected no open sessions")
	}
	if err := chat.Send(ctx, id, "hi", func(string) {}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected closed session to be gone, got %v", err)
	}
}

func TestChatSweepExpiresIdleSessions(t *testing.T) {
	chat := newTestChat(t, &scriptedLLM{chunks: []string{"ok"}}, 30*time.Minute)
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	chat.now = func() time.Time { return now }
	stale, _ := chat.Open(ctx)

	now = now.Add(20 * time.Minute)
	fresh, _ := chat.Open(ctx)

	now = now.Add(11 * time.Minute)
	if n := chat.sweep(ctx); n != 1 {
		t.Fatalf("expected one expired session, got %d", n)
	}
	if err := chat.Send(ctx, stale, "hi", func(string) {}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("stale session should be gone, got %v", err)
	}
	if err := chat.Send(ctx, fresh, "hi", func(string) {}); err != nil {
		t.Fatalf("fresh session should survive: %v", err)
	}
}

func TestChatRunStopsOnCancel(t *testing.T) {
	chat := newTestChat(t, &scriptedLLM{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- chat.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
