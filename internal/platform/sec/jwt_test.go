// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestStateService_RoundTrip(t *testing.T) {
	service, err := NewStateService(testSecret, "kinoteka.test", 10*time.Minute)
	require.NoError(t, err)

	token, err := service.Issue("sid-1", "/movie/3/")
	require.NoError(t, err)

	claims, err := service.Verify(token, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "/movie/3/", claims.Next)
	assert.NotEmpty(t, claims.ID)
}

func TestStateService_RejectsOtherSession(t *testing.T) {
	service, err := NewStateService(testSecret, "kinoteka.test", 10*time.Minute)
	require.NoError(t, err)

	token, err := service.Issue("sid-1", "")
	require.NoError(t, err)

	_, err = service.Verify(token, "sid-2")
	assert.Error(t, err)
}

func TestStateService_RejectsExpired(t *testing.T) {
	service, err := NewStateService(testSecret, "kinoteka.test", time.Minute)
	require.NoError(t, err)

	issuedAt := time.Now()
	service.now = func() time.Time { return issuedAt }
	token, err := service.Issue("sid-1", "")
	require.NoError(t, err)

	service.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = service.Verify(token, "sid-1")
	assert.Error(t, err)
}

func TestStateService_RejectsTamperedSignature(t *testing.T) {
	service, err := NewStateService(testSecret, "kinoteka.test", time.Minute)
	require.NoError(t, err)
	other, err := NewStateService("another-secret-of-enough-length", "kinoteka.test", time.Minute)
	require.NoError(t, err)

	token, err := other.Issue("sid-1", "")
	require.NoError(t, err)

	_, err = service.Verify(token, "sid-1")
	assert.Error(t, err)
}

func TestNewStateService_ShortSecret(t *testing.T) {
	_, err := NewStateService("short", "kinoteka.test", time.Minute)
	assert.Error(t, err)
}
