// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Sessions: Cookie names and Redis key prefixes.
  - Routes: Well-known paths the handlers redirect to.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kinoteka"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// MailSendTimeout bounds a single welcome mail delivery attempt.
	MailSendTimeout = 20 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Sessions & Authentication

const (
	// AuthIssuer is the standard 'iss' claim in signed state tokens.
	AuthIssuer = "kinoteka.app"

	// SessionCookieName is the name of the cookie holding the browser session ID.
	SessionCookieName = "sessionid"

	// SessionIDLength is the byte length of the random session identifier.
	SessionIDLength = 32

	// OAuthStateTTL is how long a started OAuth login may take to complete.
	OAuthStateTTL = 10 * time.Minute

	// FlashQueueTTL bounds how long unread flash messages survive.
	FlashQueueTTL = 10 * time.Minute
)

// # Routes

const (
	RouteIndex     = "/"
	RouteLogin     = "/accounts/login/"
	RouteLogout    = "/accounts/logout/"
	RouteRegister  = "/accounts/register/"
	RouteProfile   = "/accounts/profile/"
	RouteDirectors = "/directors/"
	RouteActors    = "/actors/"
)

// # Health Payload Fields

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Prefixes (Key Taxonomy)

const (
	RedisPrefixSession = "session:"
	RedisPrefixFlash   = "flash:"
)
