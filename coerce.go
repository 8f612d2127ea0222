// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value coercion engine
//
// Stored values form a closed set: nil, bool, int, int64, float64, string,
// json.Number, *Model, and []any (whose elements come from the same set).
// Each coercion function is an exhaustive switch over that set and never
// fails; sources with no meaningful conversion fall through to the target
// type's zero value.

// coerceString converts a stored value to a string.
// Booleans become "true"/"false", numbers their decimal text, nil and
// non-primitive values the empty string.
func coerceString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// coerceInt converts a stored value to an int64.
// Floats truncate toward zero; strings are parsed as decimal integers and
// yield 0 when parsing fails; true becomes 1, false 0.
func coerceInt(raw any) int64 {
	switch v := raw.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
		return 0
	default:
		return 0
	}
}

// coerceFloat converts a stored value to a float64.
// Integers widen; strings are parsed and yield 0 when parsing fails;
// true becomes 1, false 0.
func coerceFloat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// coerceBool converts a stored value to a bool.
// Numbers are true when nonzero. Strings match case-insensitively against
// "true", "yes" and "1"; everything else, including unrecognized strings,
// is false.
func coerceBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1":
			return true
		default:
			return false
		}
	case json.Number:
		return coerceFloat(v) != 0
	default:
		return false
	}
}
