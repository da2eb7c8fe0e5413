// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys shared by middleware and handlers.
// Read and write the values through package ctxutil, not directly.
package ctxkey

// key is unexported so no other package can forge one.
type key uint8

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = iota + 1

	// KeyIdentity carries the acting [sec.Identity] snapshot.
	KeyIdentity

	// KeySessionID carries the browser session id once the session middleware has run.
	KeySessionID

	// KeyLogger carries the per-request [*log/slog.Logger].
	KeyLogger
)
