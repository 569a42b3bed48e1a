// Package dockerhandlers exposes the Docker Hub webhook relay over HTTP.
package dockerhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	dockerservice "github.com/ZRunner/Axobot-API-V2/app/modules/docker/application"
	dockerdomain "github.com/ZRunner/Axobot-API-V2/app/modules/docker/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// DockerHandlers implements the HTTP surface of the docker module.
type DockerHandlers struct {
	service *dockerservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewDockerHandlers creates a new DockerHandlers instance.
func NewDockerHandlers(service *dockerservice.Service, logger *slog.Logger, tracer trace.Tracer) *DockerHandlers {
	return &DockerHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleWebhookNotification receives a Docker Hub push event and relays it
// to the Discord webhook named in the URL.
func (h *DockerHandlers) HandleWebhookNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	webhookID, err := types.ParseSnowflake(chi.URLParam(r, "webhookId"))
	if err != nil {
		http.Error(w, "invalid webhook path", http.StatusBadRequest)
		return
	}
	webhookToken := chi.URLParam(r, "webhookToken")

	var event dockerdomain.PushEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid push payload", http.StatusBadRequest)
		return
	}

	if err := h.service.ProcessPushNotification(ctx, webhookID, webhookToken, &event); err != nil {
		if errors.Is(err, dockerservice.ErrInvalidCallbackURL) {
			http.Error(w, "invalid callback domain", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "docker relay failed", attr.Error(err))
		http.Error(w, "failed to relay notification", http.StatusInternalServerError)
		return
	}

	_, _ = w.Write([]byte("ok"))
}
