// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key casing styles for model storage
const (
	// KeyStyleCamel normalizes all keys to a canonical camel casing.
	// snake_case and kebab-case keys are joined ("user_id" -> "userId"),
	// PascalCase keys get their first character lowercased ("Price" ->
	// "price"). This is the default style.
	KeyStyleCamel = "camel"

	// KeyStyleNone disables key normalization; keys are stored verbatim
	KeyStyleNone = "none"
)

// ValidKeyStyles contains the list of valid key style values
var ValidKeyStyles = []string{
	KeyStyleCamel,
	KeyStyleNone,
}

// ValidateKeyStyle checks if the key style is valid
//
// Returns an error if the style is not one of the supported values.
//
// Example:
//
//	if err := zeromodel.ValidateKeyStyle("camel"); err != nil {
//	    log.Fatal(err)
//	}
func ValidateKeyStyle(style string) error {
	for _, valid := range ValidKeyStyles {
		if style == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid key style: %s (valid values: camel, none)", style)
}

// NormalizeKey converts a key to the canonical casing for the given style.
//
// Under KeyStyleCamel, keys containing "_" or "-" are split on separators;
// the first segment gets its first character lowercased and every
// remaining segment gets its first character uppercased, with the rest of
// each segment left untouched. Keys without a separator only get their
// first character lowercased. Empty segments from leading, trailing, or
// consecutive separators are dropped.
//
// The transform is idempotent: NormalizeKey(NormalizeKey(k)) ==
// NormalizeKey(k) for all k. Empty keys and KeyStyleNone are returned
// verbatim.
//
// Example:
//
//	zeromodel.NormalizeKey("user_id", zeromodel.KeyStyleCamel)    // "userId"
//	zeromodel.NormalizeKey("first-name", zeromodel.KeyStyleCamel) // "firstName"
//	zeromodel.NormalizeKey("Price", zeromodel.KeyStyleCamel)      // "price"
//	zeromodel.NormalizeKey("userId", zeromodel.KeyStyleCamel)     // "userId"
func NormalizeKey(key string, style string) string {
	if style != KeyStyleCamel || key == "" {
		return key
	}

	if !strings.ContainsAny(key, "_-") {
		return lowerFirst(key)
	}

	segments := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(segments) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.Grow(len(key))
	builder.WriteString(lowerFirst(segments[0]))
	for _, segment := range segments[1:] {
		builder.WriteString(upperFirst(segment))
	}
	return builder.String()
}

// lowerFirst lowercases the first rune, leaving the rest untouched
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	lower := unicode.ToLower(r)
	if lower == r {
		return s
	}
	return string(lower) + s[size:]
}

// upperFirst uppercases the first rune, leaving the rest untouched
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}
