// Copyright (c) 2026 Clipstream. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and upload limits.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "clipstream-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Generous because registration requests carry multipart image payloads.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// Covers the two remote media uploads plus the database round trips.
	GlobalRequestTimeout = 60 * time.Second

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
	AuthIssuer = "clipstream.app"
)

// # Uploads

const (
	// MaxMultipartMemory is the in-memory buffer ceiling when parsing a
	// multipart form; larger parts spill to disk transparently.
	MaxMultipartMemory = 32 << 20 // 32 MiB

	// MaxUploadBytes caps the total registration request body.
	MaxUploadBytes = 64 << 20 // 64 MiB
)

// # HTTP Headers

const (
	// HeaderXRequestID is the correlation ID header for log tracing.
	HeaderXRequestID = "X-Request-ID"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixSignup guards in-flight registrations against concurrent
	// duplicates racing past the database uniqueness check.
	RedisPrefixSignup = "users:signup:"
)

// # Registration Guard

const (
	// SignupGuardTTL is how long an in-flight registration claim on an
	// email/username pair is held. Long enough to cover two media uploads
	// and the create, short enough to self-heal after a crashed request.
	SignupGuardTTL = 90 * time.Second
)
