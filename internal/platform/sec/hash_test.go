// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHash(t *testing.T) {
	previous := PasswordCost
	PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { PasswordCost = previous })

	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct-horse", hash)
	assert.True(t, CheckPasswordHash("correct-horse", hash))
	assert.False(t, CheckPasswordHash("wrong-horse", hash))
	assert.False(t, CheckPasswordHash("", ""), "an account without a password never matches")
}

func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := GenerateSecureToken(32)
	require.NoError(t, err)

	assert.Len(t, first, 43)
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "=")
}
