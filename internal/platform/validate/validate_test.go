// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Stalker", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("username", "alice").
		MinLen("username", "alice", 3).
		MaxLen("username", "alice", 150).
		Username("username", "alice").
		Email("email", "alice@example.com").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").       // Fails
		MinLen("username", "a", 5).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_Range checks the inclusive bounds used for review ratings.
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		value    int
		hasError bool
	}{
		{0, true},
		{1, false},
		{3, false},
		{5, false},
		{6, true},
	}

	for _, tt := range tests {
		v := &validate.Validator{}
		v.Range("rating", tt.value, 1, 5)
		assert.Equal(t, tt.hasError, v.HasErrors(), "value %d", tt.value)
	}
}

/*
TestValidator_Username accepts the same alphabet as the account forms.
*/
func TestValidator_Username(t *testing.T) {
	valid := []string{"alice", "bob.smith", "kate+films", "ivan_2024", "пётр", "a@b"}
	invalid := []string{"with space", "semi;colon", "slash/name"}

	for _, name := range valid {
		v := &validate.Validator{}
		assert.False(t, v.Username("username", name).HasErrors(), name)
	}
	for _, name := range invalid {
		v := &validate.Validator{}
		assert.True(t, v.Username("username", name).HasErrors(), name)
	}
}

/*
TestValidator_URL allows empty values, rooted media paths and absolute http(s) URLs.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		value    string
		hasError bool
	}{
		{"", false},
		{"/media/posters/solaris.jpg", false},
		{"https://cdn.example.com/p.jpg", false},
		{"ftp://example.com/p.jpg", true},
		{"not a url", true},
	}

	for _, tt := range tests {
		v := &validate.Validator{}
		v.URL("poster", tt.value)
		assert.Equal(t, tt.hasError, v.HasErrors(), tt.value)
	}
}
