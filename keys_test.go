// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import "testing"

// TestNormalizeKeyCamel tests canonical camel casing conversion
func TestNormalizeKeyCamel(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "snake case",
			key:  "user_id",
			want: "userId",
		},
		{
			name: "kebab case",
			key:  "first-name",
			want: "firstName",
		},
		{
			name: "multiple segments",
			key:  "very_long_field_name",
			want: "veryLongFieldName",
		},
		{
			name: "pascal case",
			key:  "Price",
			want: "price",
		},
		{
			name: "already canonical",
			key:  "userId",
			want: "userId",
		},
		{
			name: "single lowercase word",
			key:  "email",
			want: "email",
		},
		{
			name: "leading separator",
			key:  "_id",
			want: "id",
		},
		{
			name: "consecutive separators",
			key:  "user__id",
			want: "userId",
		},
		{
			name: "mixed separators",
			key:  "user_first-name",
			want: "userFirstName",
		},
		{
			name: "segment tail untouched",
			key:  "api_URL",
			want: "apiURL",
		},
		{
			name: "empty string",
			key:  "",
			want: "",
		},
		{
			name: "separators only",
			key:  "--",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeKey(tt.key, KeyStyleCamel)
			if got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

// TestNormalizeKeyIdempotent verifies normalize(normalize(k)) == normalize(k)
func TestNormalizeKeyIdempotent(t *testing.T) {
	keys := []string{
		"user_id", "first-name", "Price", "userId", "email", "",
		"_id", "id_", "user__id", "a-b_c", "API_token", "x", "-",
		"über_wert", "camelAlready", "HTMLBody",
	}

	for _, key := range keys {
		once := NormalizeKey(key, KeyStyleCamel)
		twice := NormalizeKey(once, KeyStyleCamel)
		if once != twice {
			t.Errorf("NormalizeKey not idempotent for %q: first %q, second %q", key, once, twice)
		}
	}
}

// TestNormalizeKeyNone verifies the identity behavior of KeyStyleNone
func TestNormalizeKeyNone(t *testing.T) {
	keys := []string{"user_id", "First-Name", "", "mixed_Case-key"}
	for _, key := range keys {
		if got := NormalizeKey(key, KeyStyleNone); got != key {
			t.Errorf("NormalizeKey(%q, none) = %q, want identity", key, got)
		}
	}
}

// TestValidateKeyStyle tests key style validation
func TestValidateKeyStyle(t *testing.T) {
	if err := ValidateKeyStyle(KeyStyleCamel); err != nil {
		t.Errorf("Expected camel to be valid, got: %v", err)
	}
	if err := ValidateKeyStyle(KeyStyleNone); err != nil {
		t.Errorf("Expected none to be valid, got: %v", err)
	}
	if err := ValidateKeyStyle("snake"); err == nil {
		t.Errorf("Expected snake to be invalid")
	}
}
