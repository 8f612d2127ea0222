// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"fmt"
	"sort"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building JSON payloads using sjson
// for path-based manipulation.
//
// The Body builder tracks errors internally to enable method chaining
// while providing error checking through String() or Err() methods. Built
// payloads feed Model.MapBytes or Client.Post.
//
// Example:
//
//	body := zeromodel.Body{}.
//	    Set("user_id", 42).
//	    Set("email", "a@b.com").
//	    Set("address.city", "Berlin")
//
//	data, err := body.Bytes()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := model.MapBytes(data); err != nil {
//	    log.Fatal(err)
//	}
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified JSON path and returns a new Body
//
// The path uses dot notation for nested fields (e.g., "address.city").
// The value can be any type that sjson supports (string, number, bool,
// slices, maps).
//
// If an error occurs, the error is stored and returned by String() or
// Err(). Once an error occurs, all subsequent operations are no-ops that
// preserve the error.
//
// Returns the Body for method chaining.
func (b Body) Set(path string, value any) Body {
	// Short-circuit if already in error state
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// Delete removes a value at the specified JSON path and returns a new Body
//
// If an error occurs, the error is stored and returned by String() or
// Err().
//
// Returns the Body for method chaining.
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// String returns the JSON string representation and any error encountered
// during building
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process
func (b Body) Err() error {
	return b.err
}

// BodyFromModel serializes a model's storage into a Body, recursing into
// child models so the built payload mirrors the mapped tree. This is the
// inverse of Model.MapBytes and the way locally mutated models go back
// out over the wire:
//
//	user.Set("email", "new@b.com")
//	payload, err := zeromodel.BodyFromModel(user).String()
//	if err == nil {
//	    res, err = client.Post(ctx, "/users/42", payload)
//	}
//
// Keys are emitted in sorted order so equal trees serialize identically.
func BodyFromModel(m *Model) Body {
	b := Body{str: "{}"}

	m.mu.RLock()
	snapshot := m.snapshotLocked()
	m.mu.RUnlock()

	for _, key := range sortedKeys(snapshot) {
		b = b.setValue(escapeJSONPath(key), snapshot[key])
	}
	return b
}

// setValue places one stored value at a path, expanding child models into
// nested objects and arrays element by element
func (b Body) setValue(path string, value any) Body {
	if b.err != nil {
		return b
	}
	switch v := value.(type) {
	case *Model:
		v.mu.RLock()
		snapshot := v.snapshotLocked()
		v.mu.RUnlock()
		if len(snapshot) == 0 {
			return b.SetRaw(path, "{}")
		}
		for _, key := range sortedKeys(snapshot) {
			b = b.setValue(path+"."+escapeJSONPath(key), snapshot[key])
		}
		return b
	case []any:
		if len(v) == 0 {
			return b.SetRaw(path, "[]")
		}
		for i, element := range v {
			b = b.setValue(fmt.Sprintf("%s.%d", path, i), element)
		}
		return b
	default:
		return b.Set(path, value)
	}
}

// SetRaw sets a pre-encoded JSON fragment at the specified path and
// returns a new Body. The fragment is inserted verbatim, without
// re-encoding.
func (b Body) SetRaw(path string, rawJSON string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.SetRaw(b.str, path, rawJSON)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRaw(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

func sortedKeys(storage map[string]any) []string {
	keys := make([]string, 0, len(storage))
	for k := range storage {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bytes returns the JSON byte slice representation and any error
// encountered during building
//
// This is the form Model.MapBytes consumes:
//
//	body := zeromodel.Body{}.Set("name", "A")
//	data, err := body.Bytes()
//	if err == nil {
//	    err = model.MapBytes(data)
//	}
func (b Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return []byte(b.str), nil
}
