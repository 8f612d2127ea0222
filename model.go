// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tidwall/gjson"
)

// ItemsKey is the reserved storage key used by MapSlice to hold a mapped
// top-level JSON array
const ItemsKey = "items"

// Model is a named, mutable key-value node representing one JSON object.
//
// Models are usually obtained from a Registry, which guarantees exactly
// one live instance per name and attempts a cache restore on first
// access. Nested objects encountered while mapping become child models
// with derived names ("<parent>.<key>" or "<parent>.<key>[<index>]"), so
// a mapped response forms a tree that Get can navigate to any depth
// without ever panicking.
//
// All storage keys are held in canonical casing; no two keys differ only
// by casing style. A nested JSON object is never stored raw, it is always
// materialized as a child Model first.
//
// # Thread Safety
//
// All reads and writes to one model's storage are mutually exclusive.
// Map replaces storage atomically from the caller's point of view, so
// concurrent readers never observe a partially replaced map. Different
// models do not contend. Cache persistence runs after the storage
// mutation completes, outside the critical section.
type Model struct {
	name string

	// RWMutex guarding storage
	mu      sync.RWMutex
	storage map[string]any

	keyStyle string
	logger   Logger

	// cache is nil for detached and child models; only registry-owned
	// models persist
	cache *cacheManager
}

// NewModel creates a detached model that is not connected to a registry
// or cache. Writes to it are never persisted.
//
// Detached models are useful in tests and as safe sentinels; production
// code normally goes through Registry.InstanceFor.
func NewModel(name string) *Model {
	return newModel(name, KeyStyleCamel, &NoOpLogger{}, nil)
}

// newModel creates a model carrying the registry's configuration
func newModel(name, keyStyle string, logger Logger, cache *cacheManager) *Model {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &Model{
		name:     name,
		storage:  make(map[string]any),
		keyStyle: keyStyle,
		logger:   logger,
		cache:    cache,
	}
}

// Name returns the model's stable identity, used as its cache key and as
// the prefix of nested model names
func (m *Model) Name() string {
	return m.name
}

// Get returns the value stored under a key, never failing.
//
// The key is normalized before lookup, so Get("user_id") and
// Get("userId") address the same field under the camel style. A missing
// key yields a Value whose Exists() is false; every accessor on that
// Value degrades to a zero value instead of panicking.
//
// Example:
//
//	m.Map(map[string]any{"user_id": 42})
//	m.Get("userId").Int()            // 42
//	m.Get("missing").Int()           // 0
//	m.Get("missing").Get("deeper")   // still safe, Exists() == false
func (m *Model) Get(key string) Value {
	key = NormalizeKey(key, m.keyStyle)

	m.mu.RLock()
	raw, ok := m.storage[key]
	m.mu.RUnlock()

	return Value{
		raw:    raw,
		exists: ok,
		key:    key,
		path:   m.name + "." + key,
	}
}

// Set overwrites a single key and persists the model as a side effect.
//
// The key is normalized and the value resolved the same way Map resolves
// it: a map becomes a child model, an array of maps becomes an array of
// child models.
func (m *Model) Set(key string, value any) {
	key = NormalizeKey(key, m.keyStyle)
	resolved := m.resolveValue(m.name+"."+key, value)

	m.mu.Lock()
	m.storage[key] = resolved
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.persist(snapshot)
}

// Map replaces the model's entire storage with the mapped form of a JSON
// object and persists the result.
//
// Keys are normalized to the canonical casing. Values resolve per node:
// nested objects become child models named "<name>.<key>", arrays of
// objects become arrays of child models named "<name>.<key>[<index>]",
// mixed arrays keep non-object elements in place, explicit nulls are kept
// (distinguishable from absent keys), and other primitives pass through.
//
// The old storage is fully discarded, including its child models; they
// become unreachable and are not cached.
func (m *Model) Map(obj map[string]any) {
	storage := m.buildStorage(obj)

	m.mu.Lock()
	m.storage = storage
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Debug("model mapped",
		"model", m.name,
		"keys", len(snapshot))
	m.persist(snapshot)
}

// MapSlice maps a top-level JSON array under the reserved "items" key as
// an array of child models, leaving all other keys untouched.
//
// Example:
//
//	m.MapSlice([]any{
//	    map[string]any{"name": "A"},
//	    map[string]any{"name": "B"},
//	})
//	m.Get("items").Index(1).Get("name").String() // "B"
func (m *Model) MapSlice(items []any) {
	resolved := m.resolveArray(m.name+"."+ItemsKey, items)

	m.mu.Lock()
	m.storage[ItemsKey] = resolved
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Debug("model mapped from array",
		"model", m.name,
		"items", len(items))
	m.persist(snapshot)
}

// MapBytes decodes raw JSON and maps it into the model.
//
// A top-level object maps like Map, a top-level array like MapSlice.
// Invalid JSON or a non-object, non-array root leaves the model untouched
// and returns an error. This is the bridge from transport responses (and
// the Body builder) into a model.
func (m *Model) MapBytes(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("map bytes: invalid JSON for model %q", m.name)
	}
	parsed := gjson.ParseBytes(data)
	switch {
	case parsed.IsObject():
		obj, _ := parsed.Value().(map[string]any)
		m.Map(obj)
		return nil
	case parsed.IsArray():
		arr, _ := parsed.Value().([]any)
		m.MapSlice(arr)
		return nil
	default:
		return fmt.Errorf("map bytes: JSON root must be an object or array for model %q", m.name)
	}
}

// AllKeys returns the model's storage keys in sorted order
func (m *Model) AllKeys() []string {
	m.mu.RLock()
	keys := make([]string, 0, len(m.storage))
	for k := range m.storage {
		keys = append(keys, k)
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// HasKey reports whether a key is present. The key is normalized before
// lookup.
func (m *Model) HasKey(key string) bool {
	key = NormalizeKey(key, m.keyStyle)
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.storage[key]
	return ok
}

// Clear empties the model's storage and evicts its cache entry
func (m *Model) Clear() {
	m.mu.Lock()
	m.storage = make(map[string]any)
	m.mu.Unlock()

	if m.cache != nil {
		m.cache.clear(m.name)
	}
}

// buildStorage resolves a JSON object into storage form. Every input
// shape has a defined resolution; this path has no error conditions.
func (m *Model) buildStorage(obj map[string]any) map[string]any {
	storage := make(map[string]any, len(obj))
	for key, value := range obj {
		normalized := NormalizeKey(key, m.keyStyle)
		storage[normalized] = m.resolveValue(m.name+"."+normalized, value)
	}
	return storage
}

// resolveValue decides what one JSON value becomes in storage: nested
// objects materialize as child models, arrays resolve per element, and
// primitives (including explicit nulls) pass through.
func (m *Model) resolveValue(childName string, value any) any {
	switch v := value.(type) {
	case map[string]any:
		child := newModel(childName, m.keyStyle, m.logger, nil)
		child.storage = child.buildStorage(v)
		return child
	case []any:
		return m.resolveArray(childName, v)
	default:
		return value
	}
}

// resolveArray resolves array elements in place: object elements become
// child models named "<childName>[<index>]", nested arrays recurse so
// objects materialize as child models at any depth, and primitives pass
// through unchanged, preserving original order.
func (m *Model) resolveArray(childName string, items []any) []any {
	resolved := make([]any, len(items))
	for i, element := range items {
		resolved[i] = m.resolveValue(fmt.Sprintf("%s[%d]", childName, i), element)
	}
	return resolved
}

// snapshotLocked copies storage for the cache manager; caller holds the
// write lock. The copy keeps persistence out of the critical section.
func (m *Model) snapshotLocked() map[string]any {
	snapshot := make(map[string]any, len(m.storage))
	for k, v := range m.storage {
		snapshot[k] = v
	}
	return snapshot
}

// persist hands a storage snapshot to the cache manager. Detached and
// child models have no cache manager and skip persistence entirely.
func (m *Model) persist(snapshot map[string]any) {
	if m.cache == nil {
		return
	}
	m.cache.persist(m.name, snapshot)
}

// restoreFromCache seeds storage from a persisted entry, if one exists.
// Called by the registry during construction, before the model is shared.
func (m *Model) restoreFromCache() {
	if m.cache == nil {
		return
	}
	restored := m.cache.restore(m.name)
	if restored == nil {
		return
	}

	m.mu.Lock()
	m.storage = restored
	m.mu.Unlock()

	m.logger.Debug("model restored from cache",
		"model", m.name,
		"keys", len(restored))
}
