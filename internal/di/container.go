// Package di wires the application together.
package di

import (
	"context"

	"bioverse-backend/internal/config"
	"bioverse-backend/internal/domain"
	"bioverse-backend/internal/infrastructure/observability"
	"bioverse-backend/internal/service/chat"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logging     *Logging
	Logger      *zap.Logger
	Watcher     *config.Watcher
	Tracer      *observability.TracerProvider
	Collector   *observability.Collector
	Graph       *domain.Graph
	ChatService *chat.Service
	Handler     *chi.Mux
}

// Shutdown stops background work and flushes telemetry.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	return c.Tracer.Shutdown(ctx)
}
