// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// CacheKeyPrefix is the reserved prefix for all cache entries written by
// this library. Model data lives under "<prefix><name>" and its write
// timestamp under "<prefix><name>.timestamp". ClearAll only touches keys
// under this prefix, never the rest of the store.
const CacheKeyPrefix = "zeromodel."

// timestampSuffix marks the companion timestamp entry of a cache entry
const timestampSuffix = ".timestamp"

// cacheManager persists and restores the serializable subset of model
// storage under the configured policy.
//
// Caching is best-effort: every storage-layer error is swallowed (logged
// at Warn level at most) and never propagates to callers of Map or Get.
// All store access is serialized through a single mutex so interleaved
// partial writes cannot occur.
type cacheManager struct {
	mu     sync.Mutex
	policy string
	ttl    time.Duration
	store  Store
	logger Logger

	// now is injectable for TTL tests
	now func() time.Time
}

// newCacheManager wires a cache manager for the given policy.
//
// PolicyUntilProcessExit always routes writes to a fresh in-process
// memory store so entries cannot outlive the process, regardless of the
// configured store.
func newCacheManager(policy string, ttl time.Duration, store Store, logger Logger) *cacheManager {
	if policy == PolicyUntilProcessExit {
		store = NewMemoryStore()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &cacheManager{
		policy: policy,
		ttl:    ttl,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// active reports whether the policy persists anything at all
func (c *cacheManager) active() bool {
	return c.policy != PolicyNoCache && c.policy != PolicyInMemoryOnly
}

// persist writes the serializable subset of storage for a model.
//
// Only primitives and arrays of primitives are persisted; nested models
// are dropped and rebuilt from the next mapping call. A write timestamp
// is stored alongside the entry for TTL bookkeeping.
func (c *cacheManager) persist(name string, storage map[string]any) {
	if !c.active() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	payload := "{}"
	for key, value := range storage {
		if !cacheable(value) {
			continue
		}
		result, err := sjson.Set(payload, escapeJSONPath(key), value)
		if err != nil {
			c.logger.Warn("cache serialization failed, skipping key",
				"model", name,
				"key", key,
				"error", err.Error())
			continue
		}
		payload = result
	}

	if err := c.store.Set(CacheKeyPrefix+name, payload); err != nil {
		c.logger.Warn("cache write failed",
			"model", name,
			"error", err.Error())
		return
	}
	ts := strconv.FormatInt(c.now().Unix(), 10)
	if err := c.store.Set(CacheKeyPrefix+name+timestampSuffix, ts); err != nil {
		c.logger.Warn("cache timestamp write failed",
			"model", name,
			"error", err.Error())
	}
}

// restore returns the persisted subset for a model, or nil when no entry
// exists, the policy does not persist, or the entry is stale.
//
// Under PolicyTTL a stale entry (older than the configured TTL) is
// evicted and nil is returned.
func (c *cacheManager) restore(name string) map[string]any {
	if !c.active() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	payload, ok := c.store.Get(CacheKeyPrefix + name)
	if !ok {
		return nil
	}

	if c.policy == PolicyTTL {
		raw, ok := c.store.Get(CacheKeyPrefix + name + timestampSuffix)
		written, err := strconv.ParseInt(raw, 10, 64)
		if !ok || err != nil || c.now().Sub(time.Unix(written, 0)) > c.ttl {
			c.evictLocked(name)
			return nil
		}
	}

	parsed := gjson.Parse(payload)
	if !parsed.IsObject() {
		// Corrupt entry, drop it
		c.evictLocked(name)
		return nil
	}

	storage := make(map[string]any)
	parsed.ForEach(func(key, value gjson.Result) bool {
		storage[key.String()] = value.Value()
		return true
	})
	return storage
}

// clear removes one model's cache entry and its timestamp
func (c *cacheManager) clear(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(name)
}

// clearAll removes every entry under the reserved key prefix, leaving the
// rest of the underlying store untouched
func (c *cacheManager) clearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.store.Keys() {
		if strings.HasPrefix(key, CacheKeyPrefix) {
			if err := c.store.Delete(key); err != nil {
				c.logger.Warn("cache delete failed",
					"key", key,
					"error", err.Error())
			}
		}
	}
}

// evictLocked removes a model's entry pair; caller holds the mutex
func (c *cacheManager) evictLocked(name string) {
	if err := c.store.Delete(CacheKeyPrefix + name); err != nil {
		c.logger.Warn("cache delete failed",
			"model", name,
			"error", err.Error())
	}
	if err := c.store.Delete(CacheKeyPrefix + name + timestampSuffix); err != nil {
		c.logger.Warn("cache timestamp delete failed",
			"model", name,
			"error", err.Error())
	}
}

// cacheable reports whether a stored value belongs to the serializable
// subset: primitives and arrays of primitives. Nested models (and arrays
// containing them) are excluded.
func cacheable(value any) bool {
	switch v := value.(type) {
	case nil, bool, int, int64, float64, string, json.Number:
		return true
	case []any:
		for _, element := range v {
			switch element.(type) {
			case nil, bool, int, int64, float64, string, json.Number:
			default:
				return false
			}
		}
		return true
	default:
		return false
	}
}

// escapeJSONPath escapes a storage key so sjson treats it as a single
// object member instead of a nested path
func escapeJSONPath(key string) string {
	var builder strings.Builder
	builder.Grow(len(key))
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			builder.WriteRune('\\')
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
