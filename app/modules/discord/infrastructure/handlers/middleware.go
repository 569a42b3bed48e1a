package discordhandlers

import (
	"net/http"

	"github.com/bwmarrin/discordgo"

	authhandlers "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/handlers"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
)

// RequireGuildMember rejects requests whose authenticated user is not a
// member of the guild in the URL. Must run after the token check.
func (h *DiscordHandlers) RequireGuildMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		guildID, ok := guildIDParam(w, r)
		if !ok {
			return
		}
		userID, ok := authhandlers.UserIDFromContext(ctx)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		isMember, err := h.bot.CheckUserPresenceInGuild(ctx, guildID, userID)
		if err != nil {
			h.logger.ErrorContext(ctx, "membership check failed",
				attr.String("guild_id", guildID.String()),
				attr.String("user_id", userID.String()),
				attr.Error(err),
			)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if !isMember {
			http.Error(w, "not a member of this guild", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireGuildManager rejects requests whose authenticated user cannot
// manage the guild in the URL. Must run after the token check.
func (h *DiscordHandlers) RequireGuildManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		guildID, ok := guildIDParam(w, r)
		if !ok {
			return
		}
		userID, ok := authhandlers.UserIDFromContext(ctx)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		allowed, err := h.bot.CheckUserPermissionInGuild(ctx, guildID, userID, discordgo.PermissionManageServer)
		if err != nil {
			h.logger.ErrorContext(ctx, "permission check failed",
				attr.String("guild_id", guildID.String()),
				attr.String("user_id", userID.String()),
				attr.Error(err),
			)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "missing manage guild permission", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
