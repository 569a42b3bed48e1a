// Package crowdinhandlers exposes the Crowdin webhook relay over HTTP.
package crowdinhandlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	crowdinservice "github.com/ZRunner/Axobot-API-V2/app/modules/crowdin/application"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// maxPayloadBytes caps a webhook body; Crowdin batches stay well under it.
const maxPayloadBytes = 1 << 20

// CrowdinHandlers implements the HTTP surface of the crowdin module.
type CrowdinHandlers struct {
	service *crowdinservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCrowdinHandlers creates a new CrowdinHandlers instance.
func NewCrowdinHandlers(service *crowdinservice.Service, logger *slog.Logger, tracer trace.Tracer) *CrowdinHandlers {
	return &CrowdinHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleWebhookNotification receives a Crowdin webhook call and relays it
// to the Discord webhook named in the URL.
func (h *CrowdinHandlers) HandleWebhookNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	webhookID, err := types.ParseSnowflake(chi.URLParam(r, "webhookId"))
	if err != nil {
		http.Error(w, "invalid webhook path", http.StatusBadRequest)
		return
	}
	webhookToken := chi.URLParam(r, "webhookToken")

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if err := h.service.ProcessNotification(ctx, webhookID, webhookToken, payload); err != nil {
		h.logger.ErrorContext(ctx, "crowdin relay failed", attr.Error(err))
		http.Error(w, "failed to relay notification", http.StatusInternalServerError)
		return
	}

	_, _ = w.Write([]byte("ok"))
}
