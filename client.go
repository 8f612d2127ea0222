// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/pretty"
)

// Default client configuration values
const (
	DefaultMaxRetries         = 3
	DefaultBackoffMinDelay    = 1 * time.Second
	DefaultBackoffMaxDelay    = 60 * time.Second
	DefaultBackoffDelayFactor = 2
	DefaultOperationTimeout   = 15 * time.Second
)

// Security limits for JSON processing and logging
const (
	// MaxJSONSizeForLogging limits how large a body may be before debug
	// logging replaces it with a placeholder (prevents ReDoS during
	// redaction)
	MaxJSONSizeForLogging = 1 * 1024 * 1024

	// MaxResponseBodySize caps how much of a response body is read (10MB)
	MaxResponseBodySize = 10 * 1024 * 1024
)

// Logging message constants
const (
	JSONTooLargeMessage = "[JSON TOO LARGE FOR LOGGING]"
)

// defaultRedactionPatterns contains regex patterns for redacting
// sensitive data in logs
var defaultRedactionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"password"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"secret"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"key"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"token"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"auth"\s*:\s*"[^"]*"`),
}

// Client is the HTTP transport collaborator that fetches JSON for model
// mapping.
//
// The client never panics and reports failures through an explicit
// result: transport errors (invalid URL, network failure, non-2xx
// status, empty body, unparseable body) come back as a RequestError plus
// a Res whose OK field is false. Transient errors are retried with
// exponential backoff and jitter.
type Client struct {
	// BaseURL is the scheme and host every request path is joined to
	BaseURL string

	// HTTPClient is the underlying http.Client; replaceable in tests
	HTTPClient *http.Client

	// Timeout configuration
	OperationTimeout time.Duration

	// Retry configuration
	MaxRetries         int
	BackoffMinDelay    time.Duration
	BackoffMaxDelay    time.Duration
	BackoffDelayFactor float64

	// Default headers sent with every request
	headers map[string]string

	// authToken supplies the bearer token per attempt, nil when unset
	authToken func() string

	// Logging configuration
	logger            Logger
	prettyPrintLogs   bool
	redactionPatterns []*regexp.Regexp
}

// NewClient creates a new client with the specified base URL and options
//
// Example:
//
//	client, err := zeromodel.NewClient(
//	    "https://api.example.com",
//	    zeromodel.OperationTimeout(10*time.Second),
//	    zeromodel.MaxRetries(5),
//	    zeromodel.DefaultHeader("Accept", "application/json"),
//	)
//	if err != nil {
//	    log.Fatal(err)  // Configuration error
//	}
//
// Returns a configured Client or an error if configuration validation
// fails.
func NewClient(baseURL string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		BaseURL:            strings.TrimRight(baseURL, "/"),
		HTTPClient:         &http.Client{},
		OperationTimeout:   DefaultOperationTimeout,
		MaxRetries:         DefaultMaxRetries,
		BackoffMinDelay:    DefaultBackoffMinDelay,
		BackoffMaxDelay:    DefaultBackoffMaxDelay,
		BackoffDelayFactor: DefaultBackoffDelayFactor,
		headers:            make(map[string]string),
		logger:             &NoOpLogger{},
		redactionPatterns:  defaultRedactionPatterns,
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	client.logger.Info("client created",
		"baseURL", client.BaseURL,
		"maxRetries", client.MaxRetries)

	return client, nil
}

// validateConfig checks the client configuration for invalid values
func (c *Client) validateConfig() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", c.BaseURL)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative: %d", c.MaxRetries)
	}
	if c.BackoffMinDelay <= 0 || c.BackoffMaxDelay < c.BackoffMinDelay {
		return fmt.Errorf("invalid backoff delays: min %s, max %s", c.BackoffMinDelay, c.BackoffMaxDelay)
	}
	if c.BackoffDelayFactor < 1 {
		return fmt.Errorf("backoff delay factor must be >= 1: %f", c.BackoffDelayFactor)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("operation timeout must be positive: %s", c.OperationTimeout)
	}
	return nil
}

// Backoff calculates the backoff delay for a retry attempt using
// exponential backoff with jitter
//
// The formula is: delay = min(minDelay * (factor ^ attempt) + jitter, maxDelay)
// where jitter is a cryptographically secure random value in
// [0, delay * 0.1].
//
// If crypto/rand fails, falls back to timestamp-based jitter to prevent
// thundering herd. Timestamp-based jitter is not cryptographically secure
// but provides sufficient randomness for retry dispersal.
//
// Parameters:
//   - attempt: The retry attempt number (0-indexed)
//
// Returns the duration to wait before retrying.
func (c *Client) Backoff(attempt int) time.Duration {
	delay := float64(c.BackoffMinDelay) * math.Pow(c.BackoffDelayFactor, float64(attempt))

	// Check for overflow and cap at max delay
	if math.IsInf(delay, 1) || delay > float64(c.BackoffMaxDelay) {
		delay = float64(c.BackoffMaxDelay)
	}

	// Add jitter (0-10% of delay) to prevent thundering herd
	jitterMax := int64(delay * 0.1)
	if jitterMax > 0 {
		var jitterBytes [8]byte
		if _, err := rand.Read(jitterBytes[:]); err == nil {
			// Mask off sign bit to ensure positive value within int64 range
			jitter := int64(binary.BigEndian.Uint64(jitterBytes[:]) & 0x7FFFFFFFFFFFFFFF)
			delay += float64(jitter % jitterMax)
		} else {
			timestamp := time.Now().UnixNano()
			delay += float64((timestamp%jitterMax + jitterMax) % jitterMax)
		}
	}

	finalDelay := time.Duration(delay)

	c.logger.Debug("backoff calculated",
		"attempt", attempt,
		"delay_ms", finalDelay.Milliseconds())

	return finalDelay
}

// logJSON formats a JSON body for debug logging: oversized bodies are
// replaced with a placeholder, sensitive fields are redacted, and the
// result is optionally pretty-printed
func (c *Client) logJSON(body string) string {
	if len(body) > MaxJSONSizeForLogging {
		return JSONTooLargeMessage
	}

	for _, pattern := range c.redactionPatterns {
		body = pattern.ReplaceAllStringFunc(body, func(match string) string {
			idx := strings.Index(match, ":")
			if idx < 0 {
				return match
			}
			return match[:idx] + `: "[REDACTED]"`
		})
	}

	if c.prettyPrintLogs {
		return string(pretty.Pretty([]byte(body)))
	}
	return body
}
