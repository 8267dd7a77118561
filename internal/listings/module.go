// Package listings provides the listings bounded context module.
package listings

import (
	"homely_backend/internal/adapters/storage"
	apphttp "homely_backend/internal/http"
	"homely_backend/internal/listings/handler"
	"homely_backend/internal/listings/repository"
	"homely_backend/internal/listings/service"
	"homely_backend/platform/config"
	"homely_backend/platform/logger"
	"homely_backend/platform/validator"
)

// Module is the listings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the listings module. storageSvc may be nil.
func NewModule(source repository.Source, storageSvc storage.StorageService, cfg interface {
	config.ListingsConfig
	config.MinIOConfig
}, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(source, service.Options{
		CacheTTL: cfg.GetListingsCacheTTL(),
		BaseURL:  cfg.GetAppBaseURL(),
		Storage:  storageSvc,
		Bucket:   cfg.GetMinioBucketListingImages(),
	}, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "listings"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts listings routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/listings", m.handler.Search)
	ctx.V1.GET("/listings/map", m.handler.Map)
	ctx.V1.GET("/listings/:id", m.handler.Get)
	ctx.V1.GET("/listings/:id/similar", m.handler.Similar)
	ctx.V1.GET("/listings/:id/popup", m.handler.Popup)
	ctx.V1.GET("/listings/:id/share", m.handler.Share)

	ctx.Admin.POST("/listings/refresh", m.handler.RefreshCatalog)
	ctx.Admin.POST("/listings/:id/images/presign", m.handler.PresignImage)
}
