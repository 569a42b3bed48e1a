// Package discordhandlers exposes the discord module over HTTP: guild
// config, leaderboards and user lookups.
package discordhandlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	discordservice "github.com/ZRunner/Axobot-API-V2/app/modules/discord/application"
	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	configservice "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/application"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// BotGateway is the slice of the bot client the HTTP layer needs.
type BotGateway interface {
	GetGuildInfo(ctx context.Context, guildID types.Snowflake) (*discorddomain.GuildInfo, error)
	CheckUserPresenceInGuild(ctx context.Context, guildID, userID types.Snowflake) (bool, error)
	CheckUserPermissionInGuild(ctx context.Context, guildID, userID types.Snowflake, permission int64) (bool, error)
}

// DiscordHandlers implements the HTTP surface of the discord module.
type DiscordHandlers struct {
	service *discordservice.Service
	config  *configservice.Resolver
	bot     BotGateway
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewDiscordHandlers creates a new DiscordHandlers instance.
func NewDiscordHandlers(
	service *discordservice.Service,
	config *configservice.Resolver,
	bot BotGateway,
	logger *slog.Logger,
	tracer trace.Tracer,
) *DiscordHandlers {
	return &DiscordHandlers{
		service: service,
		config:  config,
		bot:     bot,
		logger:  logger,
		tracer:  tracer,
	}
}

// guildIDParam parses the guildId URL parameter. A malformed id writes a
// 400 and reports false.
func guildIDParam(w http.ResponseWriter, r *http.Request) (types.Snowflake, bool) {
	guildID, err := types.ParseSnowflake(chi.URLParam(r, "guildId"))
	if err != nil {
		http.Error(w, "invalid guild id", http.StatusBadRequest)
		return 0, false
	}
	return guildID, true
}

// paginationParams parses the page and limit query parameters. Out-of-range
// values write a 400 and report false.
func paginationParams(w http.ResponseWriter, r *http.Request) (page, limit int, ok bool) {
	page, limit = 0, defaultPageLimit
	var err error
	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			http.Error(w, "invalid page parameter", http.StatusBadRequest)
			return 0, 0, false
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return 0, 0, false
		}
	}
	if page < 0 || limit < 1 || limit > maxPageLimit {
		http.Error(w, "page or limit out of range", http.StatusBadRequest)
		return 0, 0, false
	}
	return page, limit, true
}
