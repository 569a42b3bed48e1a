// Package discord wires the bot client, the XP leaderboards and the guild
// configuration endpoints.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	authhandlers "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/handlers"
	discordservice "github.com/ZRunner/Axobot-API-V2/app/modules/discord/application"
	"github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/botclient"
	discordhandlers "github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/handlers"
	discorddb "github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/repositories"
	configservice "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/application"
	configdomain "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/domain"
	configdb "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/infrastructure/repositories"
	"github.com/ZRunner/Axobot-API-V2/config"
	"github.com/ZRunner/Axobot-API-V2/internal/httputils"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
)

// Module represents the discord module.
type Module struct {
	bot        *botclient.Client
	service    *discordservice.Service
	resolver   *configservice.Resolver
	handlers   *discordhandlers.DiscordHandlers
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewModule creates the discord module and registers its HTTP routes. The
// auth handlers are shared so guild routes can sit behind the same token
// check middleware.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	auth *authhandlers.AuthHandlers,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing discord module")

	schema, err := configdomain.LoadBundled()
	if err != nil {
		return nil, fmt.Errorf("loading option schema: %w", err)
	}

	xpRepo := &discorddb.XPDBImpl{DB: db}
	userCacheRepo := &discorddb.UserCacheDBImpl{DB: db}
	configRepo := &configdb.ConfigDBImpl{DB: db, Beta: cfg.Discord.Beta()}

	bot, err := botclient.NewClient(cfg.Discord.BotToken, userCacheRepo, logger, obs.Metrics)
	if err != nil {
		return nil, fmt.Errorf("creating bot client: %w", err)
	}

	resolver := configservice.NewResolver(schema, configRepo, configRepo, bot, logger, obs.Tracer)
	service := discordservice.NewService(xpRepo, bot, bot, resolver, logger, obs.Tracer, obs.Metrics)
	handlers := discordhandlers.NewDiscordHandlers(service, resolver, bot, logger, obs.Tracer)

	if httpRouter != nil {
		limiter := httputils.NewIPRateLimiter(5, 10)
		httpRouter.Route("/discord", func(r chi.Router) {
			r.Use(httputils.RateLimitMiddleware(limiter))

			r.Get("/default-guild-config", handlers.HandleDefaultGuildConfig)
			r.Get("/leaderboard/global", handlers.HandleGlobalLeaderboard)
			r.Get("/leaderboard/{guildId}", handlers.HandleGuildLeaderboard)
			r.Get("/user/{userId}", handlers.HandleGetUser)

			r.Group(func(r chi.Router) {
				r.Use(auth.TokenCheckMiddleware)
				r.Get("/@me/guilds", handlers.HandleMyGuilds)

				r.Route("/guild/{guildId}", func(r chi.Router) {
					r.Use(handlers.RequireGuildMember)
					r.Get("/", handlers.HandleGuildInfo)
					r.Get("/config", handlers.HandleGuildConfig)
					r.Get("/config/{category}", handlers.HandleGuildConfigCategory)
				})
			})
		})
	}

	return &Module{
		bot:      bot,
		service:  service,
		resolver: resolver,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Resolver exposes the guild config resolver for other modules.
func (m *Module) Resolver() *configservice.Resolver {
	return m.resolver
}

// Bot exposes the bot client so the webhook relay modules can post through
// the same session.
func (m *Module) Bot() *botclient.Client {
	return m.bot
}

// Run opens the gateway connection and keeps it alive until the context is
// cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting discord module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.bot.Open(); err != nil {
		m.logger.ErrorContext(ctx, "Failed to open discord gateway", "error", err)
		return
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Discord module goroutine stopped")
}

// Close stops the discord module and its gateway session.
func (m *Module) Close() error {
	m.logger.Info("Stopping discord module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	if err := m.bot.Close(); err != nil {
		return fmt.Errorf("closing discord session: %w", err)
	}
	return nil
}
