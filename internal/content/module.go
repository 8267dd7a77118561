package content

import (
	apphttp "homely_backend/internal/http"
	"homely_backend/platform/validator"
)

// Module is the site content module implementing http.Module.
type Module struct {
	handler *Handler
}

func NewModule(site Site, val *validator.Validator) *Module {
	return &Module{handler: NewHandler(NewService(site), val)}
}

func (m *Module) Name() string {
	return "content"
}

// RegisterRoutes mounts content routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/content")
	group.GET("", m.handler.Site)
	group.GET("/area-suggestions", m.handler.AreaSuggestions)
	group.GET("/whatsapp", m.handler.WhatsApp)
}
