// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/kinoteka/internal/platform/ctxkey"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Session

// WithIdentity returns a new context carrying the acting identity snapshot.
func WithIdentity(ctx context.Context, identity sec.Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// GetIdentity retrieves the acting [sec.Identity] from the [context.Context].
// A missing identity is reported as [sec.Anonymous].
func GetIdentity(ctx context.Context) sec.Identity {
	identity, ok := ctx.Value(ctxkey.KeyIdentity).(sec.Identity)
	if !ok {
		return sec.Anonymous
	}
	return identity
}

// WithSessionID returns a new context with the browser session ID attached.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeySessionID, id)
}

// GetSessionID retrieves the browser session ID from the context.
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeySessionID).(string)
	return id
}
