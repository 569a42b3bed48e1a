package httputils

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
)

const correlationHeader = "X-Correlation-ID"

// CorrelationIDMiddleware attaches a correlation id to every request
// context, reusing the caller-supplied header when present.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(correlationHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}
		w.Header().Set(correlationHeader, correlationID)
		ctx := attr.WithCorrelationID(r.Context(), correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
