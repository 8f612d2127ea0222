// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import "fmt"

// Cache policy constants for model persistence
const (
	// PolicyUntilNextWrite persists mapped data until the next write to
	// the same model replaces it. Entries never expire on their own.
	PolicyUntilNextWrite = "untilNextWrite"

	// PolicyUntilProcessExit keeps cache entries for the lifetime of the
	// process only. Persistence is routed to a process-local memory store
	// regardless of the configured Store.
	PolicyUntilProcessExit = "untilProcessExit"

	// PolicyTTL persists mapped data with a write timestamp and treats
	// entries older than the configured TTL as stale. Stale entries are
	// evicted on restore.
	PolicyTTL = "ttl"

	// PolicyInMemoryOnly keeps models in memory without any persistence
	// (default). Registry lookups still return the same live instance.
	PolicyInMemoryOnly = "inMemoryOnly"

	// PolicyNoCache disables caching entirely
	PolicyNoCache = "noCache"
)

// ValidCachePolicies contains the list of valid cache policy values
var ValidCachePolicies = []string{
	PolicyUntilNextWrite,
	PolicyUntilProcessExit,
	PolicyTTL,
	PolicyInMemoryOnly,
	PolicyNoCache,
}

// ValidateCachePolicy checks if the cache policy is valid
//
// Returns an error if the policy is not one of the supported values.
//
// Example:
//
//	if err := zeromodel.ValidateCachePolicy("ttl"); err != nil {
//	    log.Fatal(err)
//	}
func ValidateCachePolicy(policy string) error {
	for _, valid := range ValidCachePolicies {
		if policy == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid cache policy: %s (valid values: untilNextWrite, untilProcessExit, ttl, inMemoryOnly, noCache)", policy)
}
