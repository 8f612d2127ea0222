// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import "time"

// Registry configuration options using the functional options pattern

// CachePolicy sets the cache policy for models created by the registry
// (default: inMemoryOnly)
//
// Valid policies: untilNextWrite, untilProcessExit, ttl, inMemoryOnly,
// noCache. An invalid value falls back to the default with a warning.
//
// Example:
//
//	reg := zeromodel.NewRegistry(
//	    zeromodel.CachePolicy(zeromodel.PolicyUntilNextWrite))
func CachePolicy(policy string) func(*Registry) {
	return func(r *Registry) {
		r.cachePolicy = policy
	}
}

// CacheTTL sets the time-to-live for cache entries under PolicyTTL
// (default: 5m). Ignored by other policies.
func CacheTTL(ttl time.Duration) func(*Registry) {
	return func(r *Registry) {
		r.cacheTTL = ttl
	}
}

// KeyStyle sets the canonical key casing style for models created by the
// registry (default: camel)
//
// Valid styles: camel, none. An invalid value falls back to the default
// with a warning.
func KeyStyle(style string) func(*Registry) {
	return func(r *Registry) {
		r.keyStyle = style
	}
}

// WithStore configures the persistent key-value store backing the cache
//
// By default an in-process MemoryStore is used. Use NewFileStore (or a
// custom Store implementation) to persist cache entries across process
// runs under PolicyUntilNextWrite or PolicyTTL.
//
// Example:
//
//	reg := zeromodel.NewRegistry(
//	    zeromodel.CachePolicy(zeromodel.PolicyTTL),
//	    zeromodel.WithStore(zeromodel.NewFileStore("/var/cache/app")))
func WithStore(store Store) func(*Registry) {
	return func(r *Registry) {
		if store != nil {
			r.store = store
		}
	}
}

// WithLogger configures a custom logger for the registry and every model
// it creates
//
// By default the registry uses NoOpLogger which discards all log
// messages. Use this option to enable logging with DefaultLogger or a
// custom logger.
//
// Example:
//
//	logger := zeromodel.NewDefaultLogger(zeromodel.LogLevelDebug)
//	reg := zeromodel.NewRegistry(zeromodel.WithLogger(logger))
func WithLogger(logger Logger) func(*Registry) {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Client configuration options

// OperationTimeout sets the per-request timeout (default: 15s)
func OperationTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.OperationTimeout = duration
	}
}

// MaxRetries sets the maximum number of retry attempts for transient
// errors (default: 3)
func MaxRetries(retries int) func(*Client) {
	return func(c *Client) {
		c.MaxRetries = retries
	}
}

// BackoffMinDelay sets the minimum backoff delay (default: 1s)
func BackoffMinDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMinDelay = duration
	}
}

// BackoffMaxDelay sets the maximum backoff delay (default: 60s)
func BackoffMaxDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMaxDelay = duration
	}
}

// BackoffDelayFactor sets the backoff multiplication factor (default: 2.0)
func BackoffDelayFactor(factor float64) func(*Client) {
	return func(c *Client) {
		c.BackoffDelayFactor = factor
	}
}

// DefaultHeader adds a header sent with every request
//
// Example:
//
//	client, _ := zeromodel.NewClient("https://api.example.com",
//	    zeromodel.DefaultHeader("Accept", "application/json"),
//	    zeromodel.DefaultHeader("X-App-Version", "1.4.2"))
func DefaultHeader(key, value string) func(*Client) {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// AuthTokenFunc configures a supplier for the bearer token attached to
// every request
//
// The supplier is called once per attempt, so rotating tokens are picked
// up without rebuilding the client. An empty return value means no
// Authorization header is sent.
//
// Example:
//
//	client, _ := zeromodel.NewClient("https://api.example.com",
//	    zeromodel.AuthTokenFunc(func() string { return session.Token() }))
func AuthTokenFunc(fn func() string) func(*Client) {
	return func(c *Client) {
		c.authToken = fn
	}
}

// WithClientLogger configures a custom logger for the client
//
// By default the client uses NoOpLogger which discards all log messages.
// JSON content logged at Debug level is automatically redacted to remove
// sensitive data (passwords, secrets, keys, tokens).
func WithClientLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrettyPrintLogs enables/disables JSON pretty printing in logs
//
// When enabled, JSON bodies in debug logs are formatted for readability.
// This only affects Debug-level log output. Default: disabled.
func WithPrettyPrintLogs(enabled bool) func(*Client) {
	return func(c *Client) {
		c.prettyPrintLogs = enabled
	}
}
