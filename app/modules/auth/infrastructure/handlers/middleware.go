package authhandlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	authservice "github.com/ZRunner/Axobot-API-V2/app/modules/auth/application"
	authdomain "github.com/ZRunner/Axobot-API-V2/app/modules/auth/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

type contextKey string

const (
	claimsContextKey       contextKey = "auth_claims"
	discordTokenContextKey contextKey = "discord_token"
)

// ClaimsFromContext returns the session claims attached by the token check
// middleware.
func ClaimsFromContext(ctx context.Context) (*authdomain.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*authdomain.Claims)
	return claims, ok
}

// UserIDFromContext returns the authenticated user's id.
func UserIDFromContext(ctx context.Context) (types.Snowflake, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// DiscordTokenFromContext returns the Discord OAuth access token backing
// the session.
func DiscordTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(discordTokenContextKey).(string)
	return token, ok
}

// TokenCheckMiddleware rejects requests without a live session token. The
// token is read from the Authorization header, with or without the Bearer
// prefix.
func (h *AuthHandlers) TokenCheckMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		claims, discordToken, err := h.service.CheckToken(ctx, token)
		if err != nil {
			if !errors.Is(err, authservice.ErrInvalidSession) {
				h.logger.ErrorContext(ctx, "token check failed", attr.Error(err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx = context.WithValue(ctx, claimsContextKey, claims)
		ctx = context.WithValue(ctx, discordTokenContextKey, discordToken)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
