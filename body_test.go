// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"strings"
	"testing"
)

// TestBodySet tests basic Set operation
func TestBodySet(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		value    any
		wantJSON string
	}{
		{
			name:     "set string value",
			path:     "name",
			value:    "Ada",
			wantJSON: `{"name":"Ada"}`,
		},
		{
			name:     "set boolean value",
			path:     "active",
			value:    true,
			wantJSON: `{"active":true}`,
		},
		{
			name:     "set integer value",
			path:     "count",
			value:    7,
			wantJSON: `{"count":7}`,
		},
		{
			name:     "set nested value",
			path:     "address.city",
			value:    "Berlin",
			wantJSON: `{"address":{"city":"Berlin"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := Body{}.Set(tt.path, tt.value)
			json, err := body.String()
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if json != tt.wantJSON {
				t.Errorf("Expected JSON %s, got %s", tt.wantJSON, json)
			}
		})
	}
}

// TestBodySetChaining tests method chaining
func TestBodySetChaining(t *testing.T) {
	body := Body{}.
		Set("name", "Ada").
		Set("active", true).
		Set("count", 7)

	json, err := body.String()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(json, `"name":"Ada"`) {
		t.Errorf("Expected JSON to contain name field")
	}
	if !strings.Contains(json, `"active":true`) {
		t.Errorf("Expected JSON to contain active field")
	}
	if !strings.Contains(json, `"count":7`) {
		t.Errorf("Expected JSON to contain count field")
	}
}

// TestBodyDelete tests Delete operation
func TestBodyDelete(t *testing.T) {
	body := Body{}.
		Set("name", "Ada").
		Set("temp", "remove me").
		Delete("temp")

	json, err := body.String()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if strings.Contains(json, "temp") {
		t.Errorf("Expected temp to be deleted, got: %s", json)
	}
	if !strings.Contains(json, `"name":"Ada"`) {
		t.Errorf("Expected name field to remain")
	}
}

// TestBodyErrorPropagation tests that the first error is captured and
// subsequent operations are no-ops
func TestBodyErrorPropagation(t *testing.T) {
	body := Body{}.
		Set("valid.path", "value1").
		Set("", "invalid-empty-path").
		Set("another.path", "value2")

	if body.Err() == nil {
		t.Fatalf("Expected error from empty path")
	}

	json, err := body.String()
	if err == nil {
		t.Fatalf("Expected String to return the stored error")
	}
	if strings.Contains(json, "another.path") {
		t.Errorf("Expected operations after error to be no-ops")
	}

	if _, err := body.Bytes(); err == nil {
		t.Errorf("Expected Bytes to return the stored error")
	}
}

// TestBodySetRaw tests inserting pre-encoded JSON fragments
func TestBodySetRaw(t *testing.T) {
	body := Body{}.
		Set("name", "Ada").
		SetRaw("tags", `["a","b"]`)

	json, err := body.String()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(json, `"tags":["a","b"]`) {
		t.Errorf("Expected raw fragment to be inserted verbatim, got: %s", json)
	}
}

// TestBodyFromModel tests serializing a model tree back to JSON
func TestBodyFromModel(t *testing.T) {
	m := NewModel("order")
	m.Map(map[string]any{
		"id":     7,
		"note":   nil,
		"tags":   []any{"a", "b"},
		"buyer":  map[string]any{"name": "Ada", "vip": true},
		"items":  []any{map[string]any{"sku": "X"}, map[string]any{"sku": "Y"}},
		"counts": []any{},
	})

	json, err := BodyFromModel(m).String()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := `{"buyer":{"name":"Ada","vip":true},"counts":[],"id":7,"items":[{"sku":"X"},{"sku":"Y"}],"note":null,"tags":["a","b"]}`
	if json != expected {
		t.Errorf("BodyFromModel = %s, want %s", json, expected)
	}
}

// TestBodyFromModelRoundTrip tests that map and serialize are inverses
func TestBodyFromModelRoundTrip(t *testing.T) {
	m := NewModel("source")
	m.Map(map[string]any{
		"name":   "Grace",
		"nested": map[string]any{"deep": map[string]any{"value": "here"}},
	})

	data, err := BodyFromModel(m).Bytes()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	copied := NewModel("copy")
	if err := copied.MapBytes(data); err != nil {
		t.Fatalf("MapBytes failed: %v", err)
	}

	if got := copied.Get("name").String(); got != "Grace" {
		t.Errorf("name = %q, want %q", got, "Grace")
	}
	if got := copied.Get("nested").Get("deep").Get("value").String(); got != "here" {
		t.Errorf("nested value = %q, want %q", got, "here")
	}
}

// TestBodyFromModelEmpty tests serializing an empty model
func TestBodyFromModelEmpty(t *testing.T) {
	json, err := BodyFromModel(NewModel("empty")).String()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if json != "{}" {
		t.Errorf("Expected empty object, got: %s", json)
	}
}

// TestBodyFromModelDottedKey tests that literal dots in keys stay single
// members instead of becoming nested objects
func TestBodyFromModelDottedKey(t *testing.T) {
	m := NewModel("cfg")
	m.keyStyle = KeyStyleNone
	m.Set("a.b", "flat")

	json, err := BodyFromModel(m).String()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if json != `{"a.b":"flat"}` {
		t.Errorf("Expected flat member, got: %s", json)
	}
}
