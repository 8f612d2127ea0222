// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import "time"

// Req represents a request modifier
//
// This struct is used to apply request-specific options via functional
// modifiers. Operation parameters (paths, bodies) are passed directly to
// methods.
//
// Example:
//
//	res, err := client.Get(ctx, "/users/42",
//	    zeromodel.Timeout(30*time.Second),
//	    zeromodel.Header("Accept-Language", "de"))
type Req struct {
	// Timeout is the request-specific timeout.
	// Overrides the client default timeout if set.
	Timeout time.Duration

	// Headers are request-specific headers, merged over the client's
	// default headers
	Headers map[string]string
}

// Timeout returns a request modifier that sets a custom timeout for the
// operation.
//
// This timeout takes precedence over the client's OperationTimeout. The
// timeout priority model is:
//  1. Request-specific timeout (this modifier) - highest priority
//  2. Context deadline (if already set) - medium priority
//  3. Client.OperationTimeout - fallback default
//
// Example:
//
//	res, err := client.Get(ctx, "/reports/yearly",
//	    zeromodel.Timeout(2*time.Minute))
func Timeout(duration time.Duration) func(*Req) {
	return func(req *Req) {
		req.Timeout = duration
	}
}

// Header returns a request modifier that sets a header for this request
// only, overriding any client default header with the same name
func Header(key, value string) func(*Req) {
	return func(req *Req) {
		if req.Headers == nil {
			req.Headers = make(map[string]string)
		}
		req.Headers[key] = value
	}
}
