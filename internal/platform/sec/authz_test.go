// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
)

/*
TestIsManager covers every combination of the two inputs of the gate.
*/
func TestIsManager(t *testing.T) {
	tests := []struct {
		name     string
		identity sec.Identity
		expected bool
	}{
		{"anonymous", sec.Anonymous, false},
		{"member", sec.Identity{UserID: "u1", Username: "bob", Authenticated: true}, false},
		{"staff_flag_without_session", sec.Identity{Staff: true}, false},
		{"manager", sec.Identity{UserID: "u2", Username: "kate", Authenticated: true, Staff: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sec.IsManager(tt.identity))
		})
	}
}

func TestRequireManager(t *testing.T) {
	err := sec.RequireManager(sec.Identity{Authenticated: true})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	assert.NoError(t, sec.RequireManager(sec.Identity{Authenticated: true, Staff: true}))
}

func TestRequireAuthenticated(t *testing.T) {
	err := sec.RequireAuthenticated(sec.Anonymous, "Log in first")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Equal(t, "Log in first", ae.Message)

	assert.NoError(t, sec.RequireAuthenticated(sec.Identity{Authenticated: true}, "Log in first"))
}
