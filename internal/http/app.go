// Package http holds the types main uses to hand modules to the router.
package http

import (
	"context"

	"homely_backend/internal/events"
	"homely_backend/platform/config"
	"homely_backend/platform/logger"
)

// RouterConfig is the configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs GET /api/ready.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is assembled in cmd/api and passed to router.New.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health nil means always ready.
	Health   HealthChecker
	EventBus events.Bus
	// Modules register in slice order.
	Modules []Module
}
