// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	first, second := New(), New()

	assert.NotEqual(t, first, second)
	assert.True(t, Valid(first))

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	// Generated in order, the values compare in order.
	assert.Less(t, first, second)
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("not-a-uuid"))
	assert.True(t, Valid("0190c2a4-7b1e-7c3d-8f00-0123456789ab"))
}
