// Package authhandlers exposes the auth module over HTTP: the OAuth
// callback, the session check middleware and the identity endpoint.
package authhandlers

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	authservice "github.com/ZRunner/Axobot-API-V2/app/modules/auth/application"
)

// AuthHandlers implements the HTTP surface of the auth module.
type AuthHandlers struct {
	service *authservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service *authservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) *AuthHandlers {
	return &AuthHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}
