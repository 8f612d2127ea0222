// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// MaxPathLength is the maximum length for a request path (1024 characters)
const MaxPathLength = 1024

// timeAfter is replaceable in tests to avoid real backoff sleeps
var timeAfter = time.After

// Res represents a transport response
//
// A Res is always well-formed, even on failure: OK is false, Errors
// carries the failure details, and every value accessor degrades to an
// empty gjson.Result.
type Res struct {
	// StatusCode is the HTTP status code, 0 when the request never
	// reached the server
	StatusCode int

	// OK indicates if the operation succeeded with a 2xx status
	OK bool

	// Errors contains any error information
	Errors []ErrorModel

	// body is the raw response body
	body []byte
}

// Raw returns the raw response body bytes
func (r Res) Raw() []byte {
	return r.body
}

// GetValue retrieves a value from the response body using a gjson path.
// The path follows gjson syntax for querying JSON structures.
//
// Example:
//
//	res, err := client.Get(ctx, "/users/42")
//	if err == nil {
//	    email := res.GetValue("email").String()
//	}
func (r Res) GetValue(path string) gjson.Result {
	if len(r.body) == 0 {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.body, path)
}

// validatePath validates a request path
//
// Checks:
//   - Path is not empty and starts with "/"
//   - Path length does not exceed MaxPathLength
//   - Path does not contain malicious patterns (null bytes, path traversal)
//
// Returns an error if the path is invalid with a descriptive message.
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with '/': %s", path)
	}
	if len(path) > MaxPathLength {
		return fmt.Errorf("path exceeds maximum length of %d characters", MaxPathLength)
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains null byte")
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("path contains traversal sequence: %s", path)
	}
	return nil
}

// Get performs an HTTP GET request against the configured base URL.
//
// Transient errors (network failures and the status codes in
// TransientStatusCodes) are retried with exponential backoff up to
// MaxRetries times.
//
// Example:
//
//	res, err := client.Get(ctx, "/users/42")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	user.MapBytes(res.Raw())
func (c *Client) Get(ctx context.Context, path string, mods ...func(*Req)) (Res, error) {
	return c.do(ctx, "get", http.MethodGet, path, "", mods...)
}

// Post performs an HTTP POST request with a JSON body against the
// configured base URL.
//
// The body is typically built with the Body builder:
//
//	payload := zeromodel.Body{}.
//	    Set("email", "a@b.com").
//	    Set("plan", "pro")
//	json, err := payload.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := client.Post(ctx, "/users", json)
func (c *Client) Post(ctx context.Context, path string, body string, mods ...func(*Req)) (Res, error) {
	return c.do(ctx, "post", http.MethodPost, path, body, mods...)
}

// GetModel fetches a path and maps the JSON response into a model in one
// step.
//
// An empty or unparseable body counts as a transport failure: the model
// is left untouched ("no value to map") and an error is returned. The
// model's own read path stays crash-safe either way.
//
// Example:
//
//	user := reg.InstanceFor("user")
//	if err := client.GetModel(ctx, "/users/42", user); err != nil {
//	    log.Println("fetch failed:", err)
//	}
//	user.Get("email").String()
func (c *Client) GetModel(ctx context.Context, path string, m *Model, mods ...func(*Req)) error {
	res, err := c.Get(ctx, path, mods...)
	if err != nil {
		return err
	}
	if len(res.Raw()) == 0 {
		return &RequestError{
			Operation:  "get model",
			Message:    "empty response body",
			StatusCode: res.StatusCode,
		}
	}
	if err := m.MapBytes(res.Raw()); err != nil {
		return &RequestError{
			Operation:   "get model",
			Message:     "unparseable response body",
			InternalMsg: err.Error(),
			StatusCode:  res.StatusCode,
		}
	}
	return nil
}

// do executes one HTTP operation with retry logic
func (c *Client) do(ctx context.Context, op, method, path, body string, mods ...func(*Req)) (Res, error) {
	// Validate path before doing any work
	if err := validatePath(path); err != nil {
		return Res{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, fmt.Errorf("%s: %w", op, err)
	}

	req := &Req{
		Timeout: c.OperationTimeout,
	}
	for _, mod := range mods {
		mod(req)
	}

	c.logger.Debug("request",
		"operation", op,
		"method", method,
		"path", path)
	if body != "" {
		c.logger.Debug("request body",
			"operation", op,
			"body", c.logJSON(body))
	}

	var lastRes Res
	var lastErr error
	var lastTransient bool
	retries := 0

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Res{
				OK:     false,
				Errors: []ErrorModel{{Message: fmt.Sprintf("context canceled: %s", err.Error())}},
			}, fmt.Errorf("%s: %w", op, err)
		}

		res, transient, err := c.attempt(ctx, method, path, body, req)
		if err == nil {
			c.logger.Debug("response",
				"operation", op,
				"status", res.StatusCode,
				"body", c.logJSON(string(res.Raw())))
			return res, nil
		}

		lastRes = res
		lastErr = err
		lastTransient = transient

		if !transient || attempt == c.MaxRetries {
			break
		}

		retries++
		delay := c.Backoff(attempt)
		c.logger.Warn("transient error, retrying",
			"operation", op,
			"attempt", attempt+1,
			"status", res.StatusCode,
			"delay_ms", delay.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return Res{
				OK:     false,
				Errors: []ErrorModel{{Message: fmt.Sprintf("context canceled: %s", ctx.Err().Error())}},
			}, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-timeAfter(delay):
		}
	}

	c.logger.Error("request failed",
		"operation", op,
		"path", path,
		"status", lastRes.StatusCode,
		"error", lastErr.Error())

	return lastRes, &RequestError{
		Operation:   op,
		Message:     lastErr.Error(),
		StatusCode:  lastRes.StatusCode,
		Retries:     retries,
		IsTransient: lastTransient,
	}
}

// attempt executes a single HTTP request and classifies the outcome.
// The transient return value reports whether a failure is worth retrying.
func (c *Client) attempt(ctx context.Context, method, path, body string, req *Req) (Res, bool, error) {
	attemptCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, c.BaseURL+path, reader)
	if err != nil {
		return Res{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, false, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if body != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != nil {
		if token := c.authToken(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		// Network-level failures are transient by definition
		return Res{
			OK:     false,
			Errors: []ErrorModel{{Message: err.Error()}},
		}, true, fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Close error is not actionable here

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBodySize))
	if err != nil {
		return Res{
			StatusCode: resp.StatusCode,
			OK:         false,
			Errors:     []ErrorModel{{StatusCode: resp.StatusCode, Message: err.Error()}},
		}, true, fmt.Errorf("failed to read response body: %w", err)
	}

	res := Res{
		StatusCode: resp.StatusCode,
		body:       data,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		res.Errors = []ErrorModel{{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Details:    excerpt(data),
		}}
		return res, isTransientStatus(resp.StatusCode), fmt.Errorf("unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	res.OK = true
	return res, false, nil
}

// excerpt returns the start of a response body for error details
func excerpt(data []byte) string {
	const max = 256
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
