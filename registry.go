// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"sort"
	"sync"
	"time"
)

// Default registry configuration values
const (
	DefaultCachePolicy = PolicyInMemoryOnly
	DefaultCacheTTL    = 5 * time.Minute
	DefaultKeyStyle    = KeyStyleCamel
)

// Registry owns the name-to-model map and the configuration every model
// created through it inherits.
//
// There is exactly one live Model per name: InstanceFor creates on first
// access and returns the same instance on every subsequent call, even
// under concurrent lookups of an unseen name. Configuration (cache
// policy, key style, store, logger) is fixed at construction and applies
// to every model the registry creates.
//
// Example:
//
//	reg := zeromodel.NewRegistry(
//	    zeromodel.CachePolicy(zeromodel.PolicyTTL),
//	    zeromodel.CacheTTL(5*time.Minute),
//	    zeromodel.WithStore(zeromodel.NewFileStore("/var/cache/app")),
//	)
//	user := reg.InstanceFor("user")
type Registry struct {
	// Mutex guarding the name->model map
	mu     sync.Mutex
	models map[string]*Model

	// Configuration, fixed at construction
	keyStyle    string
	cachePolicy string
	cacheTTL    time.Duration
	store       Store
	logger      Logger

	cache *cacheManager
}

// NewRegistry creates a registry with the given options applied over the
// defaults (camel key style, in-memory-only caching, NoOpLogger).
//
// Invalid cache policy or key style values fall back to their defaults
// with a warning; the registry is always usable.
func NewRegistry(opts ...func(*Registry)) *Registry {
	reg := &Registry{
		models:      make(map[string]*Model),
		keyStyle:    DefaultKeyStyle,
		cachePolicy: DefaultCachePolicy,
		cacheTTL:    DefaultCacheTTL,
		logger:      &NoOpLogger{},
	}

	for _, opt := range opts {
		opt(reg)
	}

	if err := ValidateCachePolicy(reg.cachePolicy); err != nil {
		reg.logger.Warn("falling back to default cache policy",
			"error", err.Error())
		reg.cachePolicy = DefaultCachePolicy
	}
	if err := ValidateKeyStyle(reg.keyStyle); err != nil {
		reg.logger.Warn("falling back to default key style",
			"error", err.Error())
		reg.keyStyle = DefaultKeyStyle
	}
	if reg.cacheTTL <= 0 {
		reg.cacheTTL = DefaultCacheTTL
	}

	reg.cache = newCacheManager(reg.cachePolicy, reg.cacheTTL, reg.store, reg.logger)

	reg.logger.Info("registry created",
		"cachePolicy", reg.cachePolicy,
		"keyStyle", reg.keyStyle)

	return reg
}

// InstanceFor returns the model registered under a name, creating it on
// first access.
//
// Creation attempts a cache restore, so a model mapped in an earlier
// process run comes back pre-seeded with its persisted primitive fields
// (policy permitting). Concurrent callers asking for the same unseen name
// all receive the one instance the first of them created.
func (r *Registry) InstanceFor(name string) *Model {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.models[name]; ok {
		return m
	}

	m := newModel(name, r.keyStyle, r.logger, r.cache)
	m.restoreFromCache()
	r.models[name] = m

	r.logger.Debug("model created",
		"model", name)

	return m
}

// Remove evicts a model's cache entry and drops it from the registry.
// Removing an unknown name is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	delete(r.models, name)
	r.mu.Unlock()

	r.cache.clear(name)
}

// RemoveAll drops every model and evicts every cache entry written under
// the library's reserved key prefix
func (r *Registry) RemoveAll() {
	r.mu.Lock()
	r.models = make(map[string]*Model)
	r.mu.Unlock()

	r.cache.clearAll()
}

// Names returns the names of all registered models in sorted order
func (r *Registry) Names() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	r.mu.Unlock()

	sort.Strings(names)
	return names
}

// ClearCache evicts every cache entry under the reserved key prefix while
// keeping the registered models and their in-memory storage intact
func (r *Registry) ClearCache() {
	r.cache.clearAll()
}
