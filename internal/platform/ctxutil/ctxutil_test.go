// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kinoteka/internal/platform/ctxutil"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that the identity snapshot defaults to anonymous.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()

	// 1. Initially anonymous
	identity := ctxutil.GetIdentity(ctx)
	assert.False(t, identity.Authenticated)
	assert.Empty(t, identity.Username)

	// 2. Inject and retrieve
	ctx = ctxutil.WithIdentity(ctx, sec.Identity{
		UserID:        "user-123",
		Username:      "alice",
		Authenticated: true,
		Staff:         true,
	})
	retrieved := ctxutil.GetIdentity(ctx)

	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, "alice", retrieved.Username)
	assert.True(t, retrieved.Staff)
}

/*
TestContext_SessionID verifies session IDs round-trip through the context.
*/
func TestContext_SessionID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetSessionID(ctx))

	ctx = ctxutil.WithSessionID(ctx, "sid-1")
	assert.Equal(t, "sid-1", ctxutil.GetSessionID(ctx))
}
