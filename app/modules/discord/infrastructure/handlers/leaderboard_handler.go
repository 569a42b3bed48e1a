package discordhandlers

import (
	"errors"
	"net/http"

	discordservice "github.com/ZRunner/Axobot-API-V2/app/modules/discord/application"
	"github.com/ZRunner/Axobot-API-V2/internal/httputils"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
)

// HandleGlobalLeaderboard serves one page of the cross-guild leaderboard.
func (h *DiscordHandlers) HandleGlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, limit, ok := paginationParams(w, r)
	if !ok {
		return
	}

	leaderboard, err := h.service.GetGlobalLeaderboard(ctx, page, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build global leaderboard", attr.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	httputils.RespondJSON(w, http.StatusOK, leaderboard)
}

// HandleGuildLeaderboard serves one page of a guild's leaderboard.
func (h *DiscordHandlers) HandleGuildLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID, ok := guildIDParam(w, r)
	if !ok {
		return
	}
	page, limit, ok := paginationParams(w, r)
	if !ok {
		return
	}

	leaderboard, err := h.service.GetGuildLeaderboard(ctx, guildID, page, limit)
	if err != nil {
		if errors.Is(err, discordservice.ErrGuildNotFound) {
			http.Error(w, "guild not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to build guild leaderboard",
			attr.String("guild_id", guildID.String()),
			attr.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	httputils.RespondJSON(w, http.StatusOK, leaderboard)
}
