package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsilveira/stock-ledger/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Generate(models.User{ID: 7, Username: "alice", Role: "user"})
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, float64(7), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "user", claims["role"])
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Generate(models.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate(models.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.Error(t, err)
}

func TestMemoryRefreshStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRefreshStore()

	token, err := NewRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, store.Save(ctx, token, "alice"))

	username, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	require.NoError(t, store.Revoke(ctx, token))
	_, err = store.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestMemoryLoginThrottle(t *testing.T) {
	ctx := context.Background()
	throttle := NewMemoryLoginThrottle(2)

	locked, err := throttle.Locked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, throttle.Fail(ctx, "alice"))
	require.NoError(t, throttle.Fail(ctx, "alice"))

	locked, err = throttle.Locked(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, locked)

	// a successful login clears the slate
	require.NoError(t, throttle.Reset(ctx, "alice"))
	locked, err = throttle.Locked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)
}
