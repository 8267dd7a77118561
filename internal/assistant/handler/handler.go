package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homely_backend/internal/assistant/transport"
	"homely_backend/platform/httpkit"
	"homely_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid listing id"

	eventChunk = "chunk"
	eventDone  = "done"
)

// Answerer produces one-shot assistant answers.
type Answerer interface {
	MarketNews(ctx context.Context, req transport.MarketNewsRequest) (transport.AnswerResponse, error)
	LocalInfo(ctx context.Context, req transport.LocalInfoRequest) (transport.AnswerResponse, error)
	SmartSearch(ctx context.Context, req transport.SmartSearchRequest) (transport.AnswerResponse, error)
	DescribeListing(ctx context.Context, listingID int) (transport.DescriptionResponse, error)
}

// Chat manages streaming chat sessions.
type Chat interface {
	Open(ctx context.Context) (string, error)
	Send(ctx context.Context, id, prompt string, onChunk func(string)) error
	Close(ctx context.Context, id string) error
}

// Handler handles HTTP requests for the assistant.
type Handler struct {
	answers Answerer
	chat    Chat
	val     *validator.Validator
}

// New creates a new assistant handler.
func New(answers Answerer, chat Chat, val *validator.Validator) *Handler {
	return &Handler{answers: answers, chat: chat, val: val}
}

// OpenChat starts a chat session.
// POST /api/v1/assistant/chat/sessions
func (h *Handler) OpenChat(c *gin.Context) {
	id, err := h.chat.Open(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ChatSessionResponse{SessionID: id})
}

// SendChat streams the reply to one message as server-sent events: a "chunk"
// event per fragment followed by a single "done" event.
// POST /api/v1/assistant/chat/sessions/:id/messages
func (h *Handler) SendChat(c *gin.Context) {
	var req transport.ChatMessageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	started := false
	start := func() {
		if started {
			return
		}
		started = true
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
	}

	err := h.chat.Send(c.Request.Context(), c.Param("id"), req.Message, func(chunk string) {
		start()
		c.SSEvent(eventChunk, gin.H{"text": chunk})
		c.Writer.Flush()
	})
	if err != nil {
		if !started {
			httpkit.HandleError(c, err)
		}
		return
	}

	start()
	c.SSEvent(eventDone, gin.H{})
	c.Writer.Flush()
}

// CloseChat ends a chat session.
// DELETE /api/v1/assistant/chat/sessions/:id
func (h *Handler) CloseChat(c *gin.Context) {
	if httpkit.HandleError(c, h.chat.Close(c.Request.Context(), c.Param("id"))) {
		return
	}
	c.Status(http.StatusNoContent)
}

// MarketNews answers a question about the property market.
// POST /api/v1/assistant/market-news
func (h *Handler) MarketNews(c *gin.Context) {
	var req transport.MarketNewsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.answers.MarketNews(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// LocalInfo answers a question about localities near the user.
// POST /api/v1/assistant/local-info
func (h *Handler) LocalInfo(c *gin.Context) {
	var req transport.LocalInfoRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.answers.LocalInfo(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SmartSearch summarises an area the user searched for.
// POST /api/v1/assistant/smart-search
func (h *Handler) SmartSearch(c *gin.Context) {
	var req transport.SmartSearchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.answers.SmartSearch(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DescribeListing generates a listing description.
// POST /api/v1/assistant/listings/:id/description
func (h *Handler) DescribeListing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	result, err := h.answers.DescribeListing(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}
