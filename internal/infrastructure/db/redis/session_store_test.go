package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodmart/storefront/internal/core/domain"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := NewSessionStore(client, time.Hour)
	ctx := context.Background()

	sess := domain.NewSession("abc")
	sess.SignIn(&domain.User{ID: 2, Username: "user", Role: domain.RoleUser})
	require.NoError(t, sess.Cart.Add(domain.Product{ID: 4, Name: "Гвоздодёр", Price: decimal.RequireFromString("354.00")}, 2))

	require.NoError(t, store.Save(ctx, sess))
	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("session:abc"))

	got, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	require.NotNil(t, got.UserID)
	assert.Equal(t, int64(2), *got.UserID)
	assert.Equal(t, domain.RoleUser, got.Role)

	line, ok := got.Cart.Line("4")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.Price.Equal(decimal.RequireFromString("354")))
}

func TestSessionStore_Missing(t *testing.T) {
	_, client := setupMiniredis(t)
	store := NewSessionStore(client, time.Hour)

	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Expiry(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewSession("abc")))
	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := NewSessionStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewSession("abc")))
	require.NoError(t, store.Delete(ctx, "abc"))
	assert.False(t, mr.Exists("session:abc"))

	// Deleting twice is not an error.
	require.NoError(t, store.Delete(ctx, "abc"))
}

func TestSessionStore_CorruptPayload(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := NewSessionStore(client, time.Hour)

	require.NoError(t, mr.Set("session:bad", "{not json"))
	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
}

func TestConnect_OK(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = client.Close()
}
