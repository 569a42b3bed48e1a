// Package crowdin wires the Crowdin-to-Discord webhook relay.
package crowdin

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	crowdinservice "github.com/ZRunner/Axobot-API-V2/app/modules/crowdin/application"
	crowdinhandlers "github.com/ZRunner/Axobot-API-V2/app/modules/crowdin/infrastructure/handlers"
	"github.com/ZRunner/Axobot-API-V2/internal/httputils"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
)

// Module represents the crowdin module.
type Module struct {
	service *crowdinservice.Service
	logger  *slog.Logger
}

// NewModule creates the crowdin module and registers its HTTP routes. The
// webhook sender is the discord module's bot client.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	sender crowdinservice.WebhookSender,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing crowdin module")

	service := crowdinservice.NewService(sender, logger, obs.Tracer)
	handlers := crowdinhandlers.NewCrowdinHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		limiter := httputils.NewIPRateLimiter(2, 5)
		httpRouter.Route("/crowdin", func(r chi.Router) {
			r.Use(httputils.RateLimitMiddleware(limiter))
			r.Post("/webhook/{webhookId:[0-9]+}/{webhookToken:[a-zA-Z0-9_]+}", handlers.HandleWebhookNotification)
		})
	}

	return &Module{
		service: service,
		logger:  logger,
	}, nil
}

// Close stops the crowdin module.
func (m *Module) Close() error {
	m.logger.Info("Stopping crowdin module")
	return nil
}
