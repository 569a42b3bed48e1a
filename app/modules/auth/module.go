// Package auth wires the Discord OAuth login flow and session management.
package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"golang.org/x/oauth2"

	authservice "github.com/ZRunner/Axobot-API-V2/app/modules/auth/application"
	authhandlers "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/jwt"
	authdb "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/repositories"
	"github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/botclient"
	"github.com/ZRunner/Axobot-API-V2/config"
	"github.com/ZRunner/Axobot-API-V2/internal/httputils"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
	"github.com/ZRunner/Axobot-API-V2/internal/observability/attr"
)

// tokenPurgeInterval is how often stale session rows are removed.
const tokenPurgeInterval = time.Hour

// discordEndpoint is the Discord OAuth2 endpoint pair.
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

// Module represents the auth module.
type Module struct {
	service    *authservice.Service
	handlers   *authhandlers.AuthHandlers
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewModule creates a new auth module and registers its HTTP routes.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing auth module")

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Discord.ClientID,
		ClientSecret: cfg.Discord.ClientSecret,
		RedirectURL:  cfg.Discord.RedirectURI,
		Scopes:       []string{"identify", "guilds"},
		Endpoint:     discordEndpoint,
	}

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret)
	tokenRepo := &authdb.AuthDBImpl{DB: db}

	service := authservice.NewService(
		oauthConfig,
		botclient.GetUserFromToken,
		jwtProvider,
		tokenRepo,
		authservice.Config{DefaultTTL: cfg.JWT.DefaultTTL},
		logger,
		obs.Tracer,
	)

	handlers := authhandlers.NewAuthHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		limiter := httputils.NewIPRateLimiter(2, 5)
		httpRouter.Route("/auth", func(r chi.Router) {
			r.Use(httputils.RateLimitMiddleware(limiter))

			r.Get("/discord-callback", handlers.HandleDiscordCallback)

			r.Group(func(r chi.Router) {
				r.Use(handlers.TokenCheckMiddleware)
				r.Get("/me", handlers.HandleMe)
				r.Post("/logout", handlers.HandleLogout)
			})
		})
	}

	return &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Handlers exposes the auth HTTP handlers so other modules can reuse the
// token check middleware.
func (m *Module) Handlers() *authhandlers.AuthHandlers {
	return m.handlers
}

// Run periodically purges expired sessions until the context is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting auth module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.service.PurgeExpiredTokens(ctx); err != nil {
				m.logger.ErrorContext(ctx, "Failed to purge expired sessions", attr.Error(err))
			}
		case <-ctx.Done():
			m.logger.InfoContext(ctx, "Auth module goroutine stopped")
			return
		}
	}
}

// Close stops the auth module.
func (m *Module) Close() error {
	m.logger.Info("Stopping auth module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
