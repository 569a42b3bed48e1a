// Package discordservice implements the discord-facing operations: user
// lookups and the global and per-guild XP leaderboards.
package discordservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	discorddomain "github.com/ZRunner/Axobot-API-V2/app/modules/discord/domain"
	discorddb "github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/repositories"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

// xp_type values a guild can be configured with.
const (
	xpTypeGlobal = "global"
	xpTypeMEE6   = "mee6-like"
)

// ErrGuildNotFound marks requests for guilds the bot is not in.
var ErrGuildNotFound = errors.New("guild not found")

// UserDataSource resolves user display data. Unknown users are (nil, nil).
type UserDataSource interface {
	GetRawUserData(ctx context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error)
}

// GuildSource resolves guild headers. Unreachable guilds are (nil, nil).
type GuildSource interface {
	GetGuildInfo(ctx context.Context, guildID types.Snowflake) (*discorddomain.GuildInfo, error)
}

// OptionResolver reads one resolved config option for a guild.
type OptionResolver interface {
	GetOptionValue(ctx context.Context, guildID types.Snowflake, optionName string) (any, error)
}

// Service wires the XP store, the user-data source and the guild config
// resolver into leaderboard operations.
type Service struct {
	xp      discorddb.XPRepository
	users   UserDataSource
	guilds  GuildSource
	config  OptionResolver
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.Metrics
}

// NewService creates a Service. All collaborators are injected so the
// service can be exercised with fakes.
func NewService(
	xp discorddb.XPRepository,
	users UserDataSource,
	guilds GuildSource,
	config OptionResolver,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		xp:      xp,
		users:   users,
		guilds:  guilds,
		config:  config,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

// GetUserData returns the display data of a user, or nil when Discord does
// not know the id.
func (s *Service) GetUserData(ctx context.Context, userID types.Snowflake) (*discorddomain.RawUserData, error) {
	return s.users.GetRawUserData(ctx, userID)
}

// GetGlobalLeaderboard returns one page of the cross-guild leaderboard. The
// global ranking always uses the general curve.
func (s *Service) GetGlobalLeaderboard(ctx context.Context, page, limit int) (*discorddomain.LeaderboardPage, error) {
	ctx, span := s.tracer.Start(ctx, "GetGlobalLeaderboard", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("limit", limit),
	))
	defer span.End()

	rows, err := s.xp.GetGlobalLeaderboard(ctx, page, limit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetching global leaderboard: %w", err)
	}
	count, err := s.xp.CountGlobalPlayers(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("counting global players: %w", err)
	}

	players, err := s.TransformLeaderboard(ctx, rows, page*limit, false)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &discorddomain.LeaderboardPage{
		Players:      players,
		PlayersCount: count,
		Page:         page,
		Limit:        limit,
	}, nil
}

// GetGuildLeaderboard returns one page of a guild's leaderboard. The curve
// family and the backing table follow the guild's xp_type option: guilds on
// global XP rank against the shared table, mee6-like guilds keep their own
// rows and the legacy curve.
func (s *Service) GetGuildLeaderboard(ctx context.Context, guildID types.Snowflake, page, limit int) (*discorddomain.LeaderboardPage, error) {
	ctx, span := s.tracer.Start(ctx, "GetGuildLeaderboard", trace.WithAttributes(
		attribute.String("guild_id", guildID.String()),
		attribute.Int("page", page),
		attribute.Int("limit", limit),
	))
	defer span.End()

	guild, err := s.guilds.GetGuildInfo(ctx, guildID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("resolving guild %s: %w", guildID, err)
	}
	if guild == nil {
		return nil, ErrGuildNotFound
	}

	xpType, err := s.config.GetOptionValue(ctx, guildID, "xp_type")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("resolving xp_type for guild %s: %w", guildID, err)
	}

	var (
		rows      []discorddomain.LeaderboardRow
		count     int
		useLegacy bool
	)
	if xpType == xpTypeGlobal {
		rows, err = s.xp.GetGlobalLeaderboard(ctx, page, limit)
		if err == nil {
			count, err = s.xp.CountGlobalPlayers(ctx)
		}
	} else {
		useLegacy = xpType == xpTypeMEE6
		rows, err = s.xp.GetGuildLeaderboard(ctx, guildID, page, limit)
		if err == nil {
			count, err = s.xp.CountGuildPlayers(ctx, guildID)
		}
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetching leaderboard for guild %s: %w", guildID, err)
	}

	players, err := s.TransformLeaderboard(ctx, rows, page*limit, useLegacy)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &discorddomain.LeaderboardPage{
		Guild:        guild,
		Players:      players,
		PlayersCount: count,
		Page:         page,
		Limit:        limit,
	}, nil
}
