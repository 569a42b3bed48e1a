// Package docker wires the Docker-Hub-to-Discord webhook relay.
package docker

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	dockerservice "github.com/ZRunner/Axobot-API-V2/app/modules/docker/application"
	dockerhandlers "github.com/ZRunner/Axobot-API-V2/app/modules/docker/infrastructure/handlers"
	"github.com/ZRunner/Axobot-API-V2/internal/httputils"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
)

// Module represents the docker module.
type Module struct {
	service *dockerservice.Service
	logger  *slog.Logger
}

// NewModule creates the docker module and registers its HTTP routes. The
// webhook sender is the discord module's bot client.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	sender dockerservice.WebhookSender,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing docker module")

	service := dockerservice.NewService(sender, nil, logger, obs.Tracer)
	handlers := dockerhandlers.NewDockerHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		limiter := httputils.NewIPRateLimiter(2, 5)
		httpRouter.Route("/docker", func(r chi.Router) {
			r.Use(httputils.RateLimitMiddleware(limiter))
			r.Post("/webhook/{webhookId:[0-9]+}/{webhookToken:[a-zA-Z0-9_]+}", handlers.HandleWebhookNotification)
		})
	}

	return &Module{
		service: service,
		logger:  logger,
	}, nil
}

// Close stops the docker module.
func (m *Module) Close() error {
	m.logger.Info("Stopping docker module")
	return nil
}
