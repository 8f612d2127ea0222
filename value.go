// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import "fmt"

// Value is an ephemeral, read-only wrapper around one stored value.
//
// A Value is constructed fresh on every read and never stored. It exposes
// the coercion engine's conversions and forwards member access into
// nested models, so a chain like
//
//	m.Get("a").Get("b").Index(3).Get("c").String()
//
// always terminates safely: the first missing or primitive node yields an
// absent Value, and every accessor on an absent Value returns the target
// type's zero value.
//
// An absent Value (Exists() == false) and an explicit JSON null
// (IsNull() == true) are both "no usable value" states but remain
// distinguishable.
type Value struct {
	raw    any
	exists bool

	// key and path are diagnostic only
	key  string
	path string
}

// Exists reports whether the key or index this Value was read from was
// actually present
func (v Value) Exists() bool {
	return v.exists
}

// IsNull reports whether the stored value is an explicit JSON null.
// An absent Value is not null; use Exists to tell the two apart.
func (v Value) IsNull() bool {
	return v.exists && v.raw == nil
}

// Key returns the storage key this Value was read from
func (v Value) Key() string {
	return v.key
}

// Path returns the dotted diagnostic path of this Value within its tree
func (v Value) Path() string {
	return v.path
}

// String returns the value coerced to a string.
// Booleans become "true"/"false", numbers their decimal text; absent,
// null, and non-primitive values become "".
func (v Value) String() string {
	return coerceString(v.raw)
}

// Int returns the value coerced to an int64.
// Floats truncate toward zero, true becomes 1; strings parse as decimal
// integers; anything else, including absent and null, becomes 0.
func (v Value) Int() int64 {
	return coerceInt(v.raw)
}

// Float returns the value coerced to a float64.
// Integers widen, true becomes 1; numeric strings parse; anything else
// becomes 0.
func (v Value) Float() float64 {
	return coerceFloat(v.raw)
}

// Bool returns the value coerced to a bool.
// Nonzero numbers are true; the strings "true", "yes" and "1" (case
// insensitive) are true; everything else is false.
func (v Value) Bool() bool {
	return coerceBool(v.raw)
}

// StringOrNil returns nil when the value is absent or an explicit null,
// and the coerced string otherwise
func (v Value) StringOrNil() *string {
	if !v.exists || v.raw == nil {
		return nil
	}
	s := coerceString(v.raw)
	return &s
}

// IntOrNil returns nil when the value is absent or an explicit null, and
// the coerced int64 otherwise
func (v Value) IntOrNil() *int64 {
	if !v.exists || v.raw == nil {
		return nil
	}
	n := coerceInt(v.raw)
	return &n
}

// FloatOrNil returns nil when the value is absent or an explicit null,
// and the coerced float64 otherwise
func (v Value) FloatOrNil() *float64 {
	if !v.exists || v.raw == nil {
		return nil
	}
	f := coerceFloat(v.raw)
	return &f
}

// BoolOrNil returns nil when the value is absent or an explicit null, and
// the coerced bool otherwise
func (v Value) BoolOrNil() *bool {
	if !v.exists || v.raw == nil {
		return nil
	}
	b := coerceBool(v.raw)
	return &b
}

// IsArray reports whether the stored value is an array
func (v Value) IsArray() bool {
	_, ok := v.raw.([]any)
	return ok
}

// Array returns the elements wrapped as Values, empty if the stored
// value is not an array. Child models and primitives are wrapped
// uniformly.
func (v Value) Array() []Value {
	arr, ok := v.raw.([]any)
	if !ok {
		return nil
	}
	values := make([]Value, len(arr))
	for i, element := range arr {
		values[i] = Value{
			raw:    element,
			exists: true,
			key:    fmt.Sprintf("%s[%d]", v.key, i),
			path:   fmt.Sprintf("%s[%d]", v.path, i),
		}
	}
	return values
}

// Index returns the element at position i. A non-array value or an
// out-of-range index yields an absent Value, never an error.
func (v Value) Index(i int) Value {
	arr, ok := v.raw.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Value{
			key:  fmt.Sprintf("%s[%d]", v.key, i),
			path: fmt.Sprintf("%s[%d]", v.path, i),
		}
	}
	return Value{
		raw:    arr[i],
		exists: true,
		key:    fmt.Sprintf("%s[%d]", v.key, i),
		path:   fmt.Sprintf("%s[%d]", v.path, i),
	}
}

// IsModel reports whether the stored value is a nested model
func (v Value) IsModel() bool {
	_, ok := v.raw.(*Model)
	return ok
}

// Model returns the nested model, or a freshly constructed, detached,
// empty model named "<path>_empty" when the stored value is not a model.
// The sentinel is never part of the caller's real tree, so writes to it
// are harmless.
func (v Value) Model() *Model {
	if m, ok := v.raw.(*Model); ok {
		return m
	}
	return NewModel(v.path + "_empty")
}

// Get forwards member access into a nested model.
//
// If the stored value is a model, this behaves like that model's Get;
// otherwise it returns an absent Value scoped to the attempted path. This
// forwarding is what lets arbitrary-depth traversal terminate safely
// instead of failing at the first missing or primitive node.
func (v Value) Get(name string) Value {
	if m, ok := v.raw.(*Model); ok {
		return m.Get(name)
	}
	return Value{
		key:  name,
		path: v.path + "." + name,
	}
}

// Equal reports whether two Values have equal string-coerced
// representations.
//
// This is intentionally loose: 0 and "0" compare equal, while an absent
// value and the number 0 compare unequal ("" vs "0"). Callers needing
// structural comparison should compare typed accessors directly.
func (v Value) Equal(other Value) bool {
	return v.String() == other.String()
}
