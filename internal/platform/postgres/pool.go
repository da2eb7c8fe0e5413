// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres owns the PostgreSQL connection pool shared by the catalog
// and account repositories, plus the transaction helper they use for
// multi-statement writes (movie + cast, top-list promotion, OAuth sign-up).
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kinoteka/internal/platform/constants"
)

const (
	maxConns          = 20
	minConns          = 2
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = time.Minute

	connectTimeout = 5 * time.Second
	pingTimeout    = 2 * time.Second
)

// NewPool opens the pool described by dsn and pings it once.
//
// Every physical connection is tagged with the application name and gets a
// statement timeout equal to the HTTP request timeout, so an abandoned
// request cannot leave a query running.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	config.MaxConns = maxConns
	config.MinConns = minConns
	config.MaxConnLifetime = maxConnLifetime
	config.MaxConnIdleTime = maxConnIdleTime
	config.HealthCheckPeriod = healthCheckPeriod
	config.ConnConfig.ConnectTimeout = connectTimeout
	config.ConnConfig.RuntimeParams["application_name"] = constants.AppName

	statementTimeout := fmt.Sprintf("SET statement_timeout = %d", constants.GlobalRequestTimeout.Milliseconds())
	config.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(ctx, statementTimeout)
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_connected",
		slog.String("database", config.ConnConfig.Database),
		slog.Int("max_conns", int(config.MaxConns)),
	)

	return pool, nil
}

/*
InTx runs fn in a transaction. It commits when fn returns nil and rolls back
otherwise.

Returns:
  - error: fn's error unchanged, or a begin/commit failure
*/
func InTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	// No-op after commit
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Ping checks the pool within a short deadline. Readiness probes use it.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}
