// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package zeromodel provides dynamic, crash-safe access to semi-structured
// JSON data without statically declared schemas.
//
// The library maps arbitrary JSON objects into named, navigable models
// and exposes their fields through type-coercing accessors that never
// fail: missing keys, wrong types, and out-of-range indexes all degrade
// to safe zero values instead of panicking. Mapped data can be persisted
// and restored under a configurable cache policy.
//
// # Quick Start
//
// Create a registry and map a response into a model:
//
//	reg := zeromodel.NewRegistry()
//	user := reg.InstanceFor("user")
//
//	user.Map(map[string]any{
//	    "user_id": 42,
//	    "email":   "a@b.com",
//	    "address": map[string]any{"city": "Berlin"},
//	})
//
//	user.Get("userId").Int()                   // 42
//	user.Get("email").String()                 // "a@b.com"
//	user.Get("address").Get("city").String()   // "Berlin"
//	user.Get("missing").Get("deeper").Exists() // false, never panics
//
// Keys are normalized to a canonical camel casing ("user_id" and "userId"
// address the same field). Nested objects become child models, so member
// access chains to arbitrary depth and terminates safely at the first
// missing or primitive node.
//
// # Caching
//
// Models persist their primitive fields on every write under a
// configurable policy and restore them on first registry access:
//
//	reg := zeromodel.NewRegistry(
//	    zeromodel.CachePolicy(zeromodel.PolicyTTL),
//	    zeromodel.CacheTTL(5*time.Minute),
//	    zeromodel.WithStore(zeromodel.NewFileStore("/var/cache/app")),
//	)
//
// Caching is best-effort: storage failures are swallowed and never
// surface to callers of Map or Get.
//
// # Transport
//
// A thin HTTP client fetches JSON and maps it in one step, with automatic
// retry of transient errors using exponential backoff:
//
//	client, err := zeromodel.NewClient(
//	    "https://api.example.com",
//	    zeromodel.MaxRetries(5),
//	    zeromodel.AuthTokenFunc(tokenSource),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := client.GetModel(ctx, "/users/42", user); err != nil {
//	    log.Println("fetch failed:", err)
//	}
//	user.Get("email").String() // safe even if the fetch failed
//
// # Thread Safety
//
// All registry and model operations are safe for concurrent use. Reads
// see a consistent snapshot of a model's storage; Map replaces storage
// atomically from the caller's point of view. The transport completes on
// whatever goroutine the HTTP client runs it on, and mapping from there
// is safe.
//
// # References
//
//   - gjson: https://github.com/tidwall/gjson
//   - sjson: https://github.com/tidwall/sjson
package zeromodel
