// Package leads provides the lead capture bounded context module.
package leads

import (
	"homely_backend/internal/events"
	apphttp "homely_backend/internal/http"
	"homely_backend/internal/leads/handler"
	"homely_backend/internal/leads/ports"
	"homely_backend/internal/leads/repository"
	"homely_backend/internal/leads/service"
	"homely_backend/platform/logger"
	"homely_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module.
func NewModule(repo repository.LeadsRepository, listings ports.ListingReader, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, listings, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/leads")
	if ctx.PublicRateLimiter != nil {
		public.Use(ctx.PublicRateLimiter.RateLimit())
	}
	public.POST("/enquiries", m.handler.SubmitEnquiry)
	public.POST("/visits", m.handler.SubmitVisit)
	public.POST("/alerts", m.handler.SubmitAlertSignup)

	ctx.Admin.GET("/leads", m.handler.List)
	ctx.Admin.GET("/leads/:id", m.handler.Get)
}
