// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import "testing"

// testModel builds a mapped model for value navigation tests
func testModel() *Model {
	m := NewModel("order")
	m.Map(map[string]any{
		"order_id": 1001,
		"price":    "19.99",
		"discount": nil,
		"customer": map[string]any{
			"name":    "Ada",
			"address": map[string]any{"city": "Berlin"},
		},
		"items": []any{
			map[string]any{"name": "A"},
			map[string]any{"name": "B"},
		},
		"tags": []any{"new", 7, true},
	})
	return m
}

// TestValueExistsAndNull verifies absent and explicit null are distinguishable
func TestValueExistsAndNull(t *testing.T) {
	m := testModel()

	discount := m.Get("discount")
	if !discount.Exists() {
		t.Errorf("Expected explicit null to exist")
	}
	if !discount.IsNull() {
		t.Errorf("Expected explicit null to be null")
	}

	missing := m.Get("missing")
	if missing.Exists() {
		t.Errorf("Expected missing key to not exist")
	}
	if missing.IsNull() {
		t.Errorf("Expected missing key to not report null")
	}
}

// TestValueMemberForwarding tests arbitrary-depth traversal safety
func TestValueMemberForwarding(t *testing.T) {
	m := testModel()

	if got := m.Get("customer").Get("address").Get("city").String(); got != "Berlin" {
		t.Errorf("Expected Berlin, got %q", got)
	}

	// Paths diverging from real data must terminate safely at any depth
	deep := m.Get("customer").Get("nope").Get("deeper").Get("deepest")
	if deep.Exists() {
		t.Errorf("Expected diverged path to not exist")
	}
	if got := deep.String(); got != "" {
		t.Errorf("Expected empty string at dead end, got %q", got)
	}

	// Member access through a primitive is a dead end, not a panic
	throughPrimitive := m.Get("price").Get("anything")
	if throughPrimitive.Exists() {
		t.Errorf("Expected member access through primitive to not exist")
	}
}

// TestValueArray tests array wrapping and index access
func TestValueArray(t *testing.T) {
	m := testModel()

	items := m.Get("items")
	if !items.IsArray() {
		t.Errorf("Expected items to be an array")
	}

	arr := items.Array()
	if len(arr) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(arr))
	}
	if got := arr[1].Get("name").String(); got != "B" {
		t.Errorf("Expected B, got %q", got)
	}

	// Out-of-range index yields absent, never an error
	if items.Index(5).Exists() {
		t.Errorf("Expected index 5 to not exist")
	}
	if items.Index(-1).Exists() {
		t.Errorf("Expected negative index to not exist")
	}

	// Mixed arrays keep non-object elements in place
	tags := m.Get("tags")
	if got := tags.Index(0).String(); got != "new" {
		t.Errorf("Expected new, got %q", got)
	}
	if got := tags.Index(1).Int(); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
	if got := tags.Index(2).Bool(); !got {
		t.Errorf("Expected true")
	}

	// Array() on a non-array is empty
	if arr := m.Get("price").Array(); len(arr) != 0 {
		t.Errorf("Expected empty array for primitive, got %d elements", len(arr))
	}
}

// TestValueModelSentinel verifies Model() returns a safe detached sentinel
func TestValueModelSentinel(t *testing.T) {
	m := testModel()

	customer := m.Get("customer")
	if !customer.IsModel() {
		t.Errorf("Expected customer to be a model")
	}

	price := m.Get("price")
	if price.IsModel() {
		t.Errorf("Expected price to not be a model")
	}

	sentinel := price.Model()
	if sentinel == nil {
		t.Fatalf("Expected sentinel model, got nil")
	}
	if len(sentinel.AllKeys()) != 0 {
		t.Errorf("Expected sentinel to be empty")
	}
	if sentinel.Name() != "order.price_empty" {
		t.Errorf("Expected sentinel name order.price_empty, got %q", sentinel.Name())
	}

	// Writing to the sentinel must not touch the real tree
	sentinel.Set("x", 1)
	if m.Get("price").Get("x").Exists() {
		t.Errorf("Expected sentinel write to not reach the real tree")
	}
}

// TestValueOrNilVariants tests the optional-returning accessors
func TestValueOrNilVariants(t *testing.T) {
	m := testModel()

	if got := m.Get("discount").IntOrNil(); got != nil {
		t.Errorf("Expected nil for explicit null, got %v", *got)
	}
	if got := m.Get("missing").StringOrNil(); got != nil {
		t.Errorf("Expected nil for absent key, got %v", *got)
	}
	if got := m.Get("orderId").IntOrNil(); got == nil || *got != 1001 {
		t.Errorf("Expected 1001, got %v", got)
	}
	if got := m.Get("price").FloatOrNil(); got == nil || *got != 19.99 {
		t.Errorf("Expected 19.99, got %v", got)
	}
	if got := m.Get("tags").Index(2).BoolOrNil(); got == nil || !*got {
		t.Errorf("Expected true, got %v", got)
	}
}

// TestValueEqual documents the loose string-coerced equality
func TestValueEqual(t *testing.T) {
	m := NewModel("eq")
	m.Map(map[string]any{
		"numericZero": 0,
		"stringZero":  "0",
		"boolFalse":   false,
		"empty":       "",
		"null":        nil,
	})

	// Equal types with equal string forms compare equal
	if !m.Get("numericZero").Equal(m.Get("stringZero")) {
		t.Errorf("Expected 0 and \"0\" to compare equal under loose equality")
	}

	// Zero-like values of different types can compare unequal: the
	// number 0 renders "0" while the empty string renders ""
	if m.Get("numericZero").Equal(m.Get("empty")) {
		t.Errorf("Expected 0 and \"\" to compare unequal under loose equality")
	}

	// Structural equality would distinguish null from absent, loose
	// equality does not: both render ""
	if !m.Get("null").Equal(m.Get("doesNotExist")) {
		t.Errorf("Expected null and absent to compare equal under loose equality")
	}

	// The structural view of the same pair disagrees
	if m.Get("null").Exists() == m.Get("doesNotExist").Exists() {
		t.Errorf("Expected null and absent to differ structurally")
	}
}

// TestValueDiagnosticPath verifies the dotted diagnostic path
func TestValueDiagnosticPath(t *testing.T) {
	m := testModel()

	if got := m.Get("customer").Get("name").Path(); got != "order.customer.name" {
		t.Errorf("Expected order.customer.name, got %q", got)
	}
	if got := m.Get("items").Index(1).Path(); got != "order.items[1]" {
		t.Errorf("Expected order.items[1], got %q", got)
	}
}
