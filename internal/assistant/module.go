// Package assistant provides the AI assistant bounded context module.
package assistant

import (
	"homely_backend/internal/assistant/handler"
	"homely_backend/internal/assistant/service"
	apphttp "homely_backend/internal/http"
	"homely_backend/platform/validator"
)

// Module is the assistant bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	chat    *service.ChatSessions
}

// NewModule wires the one-shot service and the chat sessions into HTTP handlers.
func NewModule(answers *service.Service, chat *service.ChatSessions, val *validator.Validator) *Module {
	return &Module{
		handler: handler.New(answers, chat, val),
		chat:    chat,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assistant"
}

// Chat returns the session manager so its janitor can be run by the caller.
func (m *Module) Chat() *service.ChatSessions {
	return m.chat
}

// RegisterRoutes mounts assistant routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/assistant")
	if ctx.AssistantRateLimiter != nil {
		group.Use(ctx.AssistantRateLimiter.RateLimit())
	}

	group.POST("/chat/sessions", m.handler.OpenChat)
	group.POST("/chat/sessions/:id/messages", m.handler.SendChat)
	group.DELETE("/chat/sessions/:id", m.handler.CloseChat)

	group.POST("/market-news", m.handler.MarketNews)
	group.POST("/local-info", m.handler.LocalInfo)
	group.POST("/smart-search", m.handler.SmartSearch)
	group.POST("/listings/:id/description", m.handler.DescribeListing)
}
