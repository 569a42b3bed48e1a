// Package app assembles the API modules behind a single chi router.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ZRunner/Axobot-API-V2/app/modules/auth"
	"github.com/ZRunner/Axobot-API-V2/app/modules/crowdin"
	"github.com/ZRunner/Axobot-API-V2/app/modules/discord"
	"github.com/ZRunner/Axobot-API-V2/app/modules/docker"
	"github.com/ZRunner/Axobot-API-V2/config"
	"github.com/ZRunner/Axobot-API-V2/internal/httputils"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
)

const shutdownTimeout = 10 * time.Second

// App holds the database, the HTTP router and every module of the API.
type App struct {
	cfg    *config.Config
	obs    *observability.Observability
	db     *bun.DB
	router chi.Router

	authModule    *auth.Module
	discordModule *discord.Module
	crowdinModule *crowdin.Module
	dockerModule  *docker.Module
}

// NewApp connects to Postgres, builds the router and initializes the modules.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability) (*App, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(httputils.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	router.Use(httputils.CorrelationIDMiddleware)
	router.Use(obs.Metrics.HTTPMiddleware)

	authModule, err := auth.NewModule(ctx, cfg, obs, db, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth module: %w", err)
	}

	discordModule, err := discord.NewModule(ctx, cfg, obs, db, authModule.Handlers(), router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize discord module: %w", err)
	}

	crowdinModule, err := crowdin.NewModule(ctx, obs, discordModule.Bot(), router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize crowdin module: %w", err)
	}

	dockerModule, err := docker.NewModule(ctx, obs, discordModule.Bot(), router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize docker module: %w", err)
	}

	return &App{
		cfg:           cfg,
		obs:           obs,
		db:            db,
		router:        router,
		authModule:    authModule,
		discordModule: discordModule,
		crowdinModule: crowdinModule,
		dockerModule:  dockerModule,
	}, nil
}

// Router exposes the assembled HTTP router, mainly for tests.
func (a *App) Router() chi.Router {
	return a.router
}

// Run starts the module goroutines and serves HTTP until the context is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(2)
	go a.authModule.Run(ctx, &wg)
	go a.discordModule.Run(ctx, &wg)

	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.obs.Logger.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	a.obs.Logger.InfoContext(ctx, "HTTP server listening", "addr", a.cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	wg.Wait()
	return nil
}

// Close shuts down the modules and the database connection.
func (a *App) Close() error {
	var errs []error
	if err := a.dockerModule.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.crowdinModule.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.discordModule.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.authModule.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing database: %w", err))
	}
	return errors.Join(errs...)
}
