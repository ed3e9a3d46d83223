package utils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPairRoundTrip(t *testing.T) {
	pair, err := GenerateTokenPair(42, "secret", time.Minute, time.Hour)
	require.NoError(t, err)

	access, err := ParseJWT(pair.Access, "secret", TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.NotEmpty(t, access.ID)

	refresh, err := ParseJWT(pair.Refresh, "secret", TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refresh.UserID)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestParseJWTRejects(t *testing.T) {
	pair, err := GenerateTokenPair(1, "secret", time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(pair.Refresh, "secret", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = ParseJWT(pair.Access, "other-secret", TokenTypeAccess)
	assert.Error(t, err)

	expired, err := GenerateJWT(1, TokenTypeAccess, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret", TokenTypeAccess)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseJWT("not-a-token", "secret", TokenTypeAccess)
	assert.Error(t, err)
}

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDenylist()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Hour))
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-2", 0))
	revoked, err = d.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked, "an already expired token needs no entry")
}
