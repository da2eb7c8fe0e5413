// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command kinotekactl is the administration tool for the Kinoteka catalog.
//
// It reads the same environment as the web server and talks to PostgreSQL
// directly. Accounts created here never receive a welcome mail.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/taibuivan/kinoteka/internal/cli"
	"github.com/taibuivan/kinoteka/internal/core/movie"
	"github.com/taibuivan/kinoteka/internal/core/review"
	"github.com/taibuivan/kinoteka/internal/platform/config"
	"github.com/taibuivan/kinoteka/internal/platform/constants"
	"github.com/taibuivan/kinoteka/internal/platform/migration"
	pgstore "github.com/taibuivan/kinoteka/internal/platform/postgres"
	"github.com/taibuivan/kinoteka/internal/users/auth"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})).
		With(slog.String("app", constants.AppName))

	root := cli.NewRootCommand(connector(log))
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}

// connector wires the production services on first use.
func connector(log *slog.Logger) cli.Connector {
	return func(ctx context.Context) (*cli.Env, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}

		movieRepository := movie.NewPostgresRepository(pool)
		movieService := movie.NewService(movieRepository, log)
		reviewService := review.NewService(review.NewPostgresRepository(pool), movieService, log)

		env := &cli.Env{
			Migrator: migrator{dsn: cfg.DatabaseURL, path: cfg.MigrationPath, log: log},
			Accounts: auth.NewService(auth.NewPostgresRepository(pool), silentWelcome{}, movieService, reviewService, log),
			Reviews:  reviewService,
			Top:      movie.NewTopList(movieRepository, log),
		}

		return env, pool.Close, nil
	}
}

// migrator binds the migration runner to one database.
type migrator struct {
	dsn  string
	path string
	log  *slog.Logger
}

func (m migrator) Up() error {
	return migration.RunUp(m.dsn, m.path, m.log)
}

func (m migrator) Down(steps int) error {
	return migration.RunDown(m.dsn, m.path, steps, m.log)
}

// silentWelcome skips the welcome mail for administratively created accounts.
type silentWelcome struct{}

func (silentWelcome) Welcome(string, string) {}
