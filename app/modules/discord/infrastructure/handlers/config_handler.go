package discordhandlers

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	"github.com/ZRunner/Axobot-API-V2/internal/httputils"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
)

// HandleDefaultGuildConfig serves the bundled option schema verbatim, key
// order included, so clients see exactly what the bot ships with.
func (h *DiscordHandlers) HandleDefaultGuildConfig(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.config.Schema().Raw())
}

// HandleGuildConfig returns the guild's resolved configuration for every
// category.
func (h *DiscordHandlers) HandleGuildConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID, ok := guildIDParam(w, r)
	if !ok {
		return
	}

	config, err := h.config.GetCategoriesConfig(ctx, guildID, configdomain.CategoryNames)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve guild config",
			attr.String("guild_id", guildID.String()),
			attr.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	httputils.RespondJSON(w, http.StatusOK, config)
}

// HandleGuildConfigCategory returns the guild's resolved configuration for
// one category. Undeclared categories resolve to an empty object.
func (h *DiscordHandlers) HandleGuildConfigCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID, ok := guildIDParam(w, r)
	if !ok {
		return
	}
	category := chi.URLParam(r, "category")
	if !slices.Contains(configdomain.CategoryNames, category) {
		http.Error(w, "unknown category", http.StatusNotFound)
		return
	}

	config, err := h.config.GetCategoriesConfig(ctx, guildID, []string{category})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve guild config category",
			attr.String("guild_id", guildID.String()),
			attr.String("category", category),
			attr.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	httputils.RespondJSON(w, http.StatusOK, config[category])
}
