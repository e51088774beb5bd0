// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer, token lifetime and login throttling.
  - Messaging: Redis key prefixes and NATS subjects.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "anicat-api"
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
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "anicat.app"

	// AccessTokenTTL is the lifetime of tokens issued by login and register.
	AccessTokenTTL = 1 * time.Hour

	// LoginMaxFailures is the number of failed logins tolerated per username
	// within LoginFailureWindow.
	LoginMaxFailures = 5

	// LoginFailureWindow is the sliding lock-out window for failed logins.
	LoginFailureWindow = 15 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
	HeaderRetryAfter    = "Retry-After"
)

// # JSON Field Identifiers

const (
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Redis Prefixes

const (
	RedisPrefixLoginFailures = "auth:login_fail:"
)

// # Event Subjects

const (
	SubjectGenreCreated   = "catalog.genre.created"
	SubjectGenreDeleted   = "catalog.genre.deleted"
	SubjectAnimeCreated   = "catalog.anime.created"
	SubjectAnimeUpdated   = "catalog.anime.updated"
	SubjectAnimeDeleted   = "catalog.anime.deleted"
	SubjectSeasonCreated  = "catalog.season.created"
	SubjectSeasonUpdated  = "catalog.season.updated"
	SubjectSeasonDeleted  = "catalog.season.deleted"
	SubjectEpisodeCreated = "catalog.episode.created"
	SubjectEpisodeUpdated = "catalog.episode.updated"
	SubjectEpisodeDeleted = "catalog.episode.deleted"
)
