// Command server runs the food diary web app: the sign-in pages, the page
// gate and the /api proxy to the remote diary backend.
//
//	@title			Food Notes API
//	@version		1.0
//	@description	Authenticated proxy in front of the food diary backend.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/andypowell00/food-notes-ui/docs"
	"github.com/andypowell00/food-notes-ui/internal/api"
	"github.com/andypowell00/food-notes-ui/internal/api/handler"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
	"github.com/andypowell00/food-notes-ui/internal/core/service"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/backend"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/db/memstore"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/db/mongo"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/db/redis"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/queue"
	"github.com/andypowell00/food-notes-ui/internal/pkg/config"
	"github.com/andypowell00/food-notes-ui/pkg/logger"
	"github.com/andypowell00/food-notes-ui/web"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel))
	if envErr != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	warnings, err := cfg.Check()
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Auth ---
	account := service.LoadAccount(cfg.Auth.Username, cfg.Auth.PasswordHash, logger.Component("credentials"))

	var sessions ports.SessionStore
	rdb, err := redis.Open(ctx, redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	switch {
	case errors.Is(err, redis.ErrDisabled):
		log.Info().Msg("redis disabled, revocations kept in memory")
		sessions = memstore.NewSessionStore()
	case err != nil:
		log.Warn().Err(err).Msg("redis unreachable, revocations kept in memory")
		rdb = nil
		sessions = memstore.NewSessionStore()
	default:
		defer rdb.Close()
		sessions = redis.NewSessionStore(rdb)
	}

	authService := service.NewAuthService(service.AuthConfig{
		Account:    account,
		Verifier:   service.NewCredentialVerifier(account, logger.Component("credentials")),
		Issuer:     service.NewSessionIssuer(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL),
		Store:      sessions,
		RenewAfter: cfg.Auth.SessionRenewAfter,
	}, logger.Component("auth"))

	// --- Audit trail ---
	var auditRepo ports.AuditRepository
	var mdb *mongodriver.Database
	conn, err := mongo.Open(ctx, mongo.Options{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	switch {
	case errors.Is(err, mongo.ErrDisabled):
		log.Info().Msg("mongodb disabled, audit trail off")
	case err != nil:
		log.Warn().Err(err).Msg("mongodb unreachable, audit trail off")
	default:
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = conn.Close(closeCtx)
		}()
		repo := mongo.NewAuditRepository(conn.DB)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		auditRepo, mdb = repo, conn.DB
	}
	auditService := service.NewAuditService(auditRepo, logger.Component("audit"))

	var auditor handler.Auditor
	if auditRepo != nil {
		dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, logger.Component("audit-queue"))
		dispatcher.Start(ctx)
		auditor = dispatcher
	}

	// --- Backend and HTTP ---
	gw := backend.New(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		APIKey:  cfg.Backend.APIKey,
		Timeout: cfg.Backend.Timeout,
	}, logger.Component("backend"))

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Gateway:  gw,
		Backend:  gw,
		Audit:    auditService,
		Auditor:  auditor,
		Mongo:    mdb,
		Redis:    rdb,
		Renderer: renderer,
		Log:      logger.Component("http"),
	}, api.Options{
		BypassAuth:     cfg.Auth.DisableAuthDev,
		ProtectAPI:     cfg.Auth.ProtectAPI,
		SecureCookie:   cfg.IsProduction(),
		LoginRateLimit: cfg.Auth.LoginRateLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
