package discordhandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authhandlers "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/handlers"
	"github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/botclient"
	"github.com/ZRunner/Axobot-API-V2/internal/httputils"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// HandleGetUser returns the display data of any Discord user.
func (h *DiscordHandlers) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := types.ParseSnowflake(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.service.GetUserData(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch user",
			attr.String("user_id", userID.String()),
			attr.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	httputils.RespondJSON(w, http.StatusOK, user)
}

// HandleGuildInfo returns a guild's public header.
func (h *DiscordHandlers) HandleGuildInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID, ok := guildIDParam(w, r)
	if !ok {
		return
	}

	guild, err := h.bot.GetGuildInfo(ctx, guildID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch guild",
			attr.String("guild_id", guildID.String()),
			attr.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if guild == nil {
		http.Error(w, "guild not found", http.StatusNotFound)
		return
	}

	httputils.RespondJSON(w, http.StatusOK, guild)
}

// HandleMyGuilds lists the guilds of the authenticated user, flagging the
// ones they can administrate.
func (h *DiscordHandlers) HandleMyGuilds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	discordToken, ok := authhandlers.DiscordTokenFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	guilds, err := botclient.GetGuildsFromToken(ctx, discordToken)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch user guilds", attr.Error(err))
		http.Error(w, "failed to fetch guilds", http.StatusBadGateway)
		return
	}

	httputils.RespondJSON(w, http.StatusOK, guilds)
}
