// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects to the Redis instance that holds browser sessions and
their flash queues.

Every page load reads the session, so lookups stay out of PostgreSQL and
expire on their own through key TTLs.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session traffic is one GET plus at most one SET per request.
const (
	poolSize     = 10
	minIdleConns = 2

	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 2 * time.Second
)

// NewClient connects to redisURL and verifies the connection with a ping.
//
// Returns an error for a malformed URL or an unreachable server.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)

	return client, nil
}

// Ping checks the connection within a short deadline. Readiness probes use it.
func Ping(context stdctx.Context, client *redis.Client) error {
	context, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(context).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
