package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, expireAt, err := SignSessionToken("s3cret", time.Hour, 1234567890123)
	require.NoError(t, err)
	assert.True(t, expireAt.After(time.Now()))

	id, err := ParseSessionToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890123), id)
}

func TestSessionTokenRejectsForeignSecret(t *testing.T) {
	token, _, err := SignSessionToken("s3cret", time.Hour, 42)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "other")
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	token, _, err := SignSessionToken("s3cret", time.Millisecond, 42)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	_, err = ParseSessionToken(token, "s3cret")
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestSignSessionTokenValidation(t *testing.T) {
	_, _, err := SignSessionToken("", time.Hour, 1)
	assert.Error(t, err)
	_, _, err = SignSessionToken("s3cret", 0, 1)
	assert.Error(t, err)
	_, err = ParseSessionToken("", "s3cret")
	assert.Error(t, err)
}
