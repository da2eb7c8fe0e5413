// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Kinoteka web server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire sessions, mail and domain services.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/kinoteka/internal/api"
	"github.com/taibuivan/kinoteka/internal/core/actor"
	"github.com/taibuivan/kinoteka/internal/core/director"
	"github.com/taibuivan/kinoteka/internal/core/movie"
	"github.com/taibuivan/kinoteka/internal/core/review"
	"github.com/taibuivan/kinoteka/internal/platform/config"
	"github.com/taibuivan/kinoteka/internal/platform/constants"
	"github.com/taibuivan/kinoteka/internal/platform/mail"
	"github.com/taibuivan/kinoteka/internal/platform/migration"
	pgstore "github.com/taibuivan/kinoteka/internal/platform/postgres"
	redisstore "github.com/taibuivan/kinoteka/internal/platform/redis"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/platform/session"
	"github.com/taibuivan/kinoteka/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("email_backend", cfg.Mail.Backend),
		slog.Bool("oauth_enabled", cfg.OAuthEnabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives until shutdown; stops background janitors.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Sessions & Mail ────────────────────────────────────────────────
	sessions := session.NewManager(session.NewRedisStore(rdb), cfg.SessionTTL, !cfg.IsDevelopment(), log)

	sender, err := mail.NewSender(cfg.Mail, log)
	must(log, err, "initialize mail sender")

	welcomer, err := mail.NewWelcomer(sender, mail.Site{
		Name:       cfg.SiteName,
		URL:        cfg.SiteURL(),
		AdminEmail: cfg.AdminEmail,
	})
	must(log, err, "initialize welcome mail")

	mailer := mail.NewAsync(welcomer, constants.MailSendTimeout, log)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckSessions: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	movieRepository := movie.NewPostgresRepository(pool)
	movieService := movie.NewService(movieRepository, log)
	topList := movie.NewTopList(movieRepository, log)

	reviewService := review.NewService(review.NewPostgresRepository(pool), movieService, log)

	directorService := director.NewService(director.NewPostgresRepository(pool), log)
	actorService := actor.NewService(actor.NewPostgresRepository(pool), log)

	authService := auth.NewService(auth.NewPostgresRepository(pool), mailer, movieService, reviewService, log)

	var oauth *auth.OAuth
	if cfg.OAuthEnabled() {
		states, err := sec.NewStateService(cfg.SessionSecret, constants.AuthIssuer, constants.OAuthStateTTL)
		must(log, err, "initialize oauth state signer")

		oauth = &auth.OAuth{
			Provider: auth.NewYandexProvider(cfg.YandexClientID, cfg.YandexClientSecret, cfg.SiteURL()+"/accounts/oauth/yandex/complete/"),
			States:   states,
		}
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Movies:    movie.NewHandler(movieService, topList, reviewService, sessions),
		Directors: director.NewHandler(directorService, sessions),
		Actors:    actor.NewHandler(actorService, sessions),
		Accounts:  auth.NewHandler(authService, sessions, oauth),
	}

	server := api.NewServer(appCtx, cfg, log, sessions, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
	}

	// Welcome mails scheduled by the last requests are drained, not dropped.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), constants.MailSendTimeout)
	defer drainCancel()
	if err := mailer.Wait(drainCtx); err != nil {
		log.Warn("mail_drain_incomplete", slog.Any("error", err))
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the root JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
