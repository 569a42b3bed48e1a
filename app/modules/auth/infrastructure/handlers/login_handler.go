package authhandlers

import (
	"errors"
	"net/http"

	authservice "github.com/ZRunner/Axobot-API-V2/app/modules/auth/application"
	"github.com/ZRunner/Axobot-API-V2/internal/httputils"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
)

// HandleDiscordCallback completes the OAuth flow: Discord redirects here
// with an authorization code, and a session token comes back.
func (h *AuthHandlers) HandleDiscordCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}

	result, err := h.service.CompleteLogin(ctx, code)
	if err != nil {
		if errors.Is(err, authservice.ErrCodeExchange) {
			h.logger.WarnContext(ctx, "oauth code rejected", attr.Error(err))
			http.Error(w, "invalid authorization code", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "login failed", attr.Error(err))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	httputils.RespondJSON(w, http.StatusOK, result)
}

// HandleMe returns the Discord identity behind the presented session token.
func (h *AuthHandlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	discordToken, ok := DiscordTokenFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetAuthenticatedUser(ctx, discordToken)
	if err != nil {
		h.logger.ErrorContext(ctx, "identity fetch failed", attr.Error(err))
		http.Error(w, "failed to fetch identity", http.StatusBadGateway)
		return
	}

	httputils.RespondJSON(w, http.StatusOK, user)
}

// HandleLogout revokes the presented session token.
func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(ctx, claims.TokenID); err != nil {
		h.logger.ErrorContext(ctx, "logout failed", attr.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
