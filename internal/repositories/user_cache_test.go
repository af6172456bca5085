package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestUserCacheRepository_SetGetDelete(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewUserCacheRepository(client, time.Minute)
	ctx := context.Background()

	user := &models.User{ID: 5, Email: "a@x.com", Username: "alice", PasswordHash: "secret-hash", Confirmed: true}
	require.NoError(t, repo.Set(ctx, user))

	raw, err := mr.Get("user:5")
	require.NoError(t, err)
	assert.NotContains(t, raw, "secret-hash")
	assert.Equal(t, time.Minute, mr.TTL("user:5"))

	cached, err := repo.Get(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "alice", cached.Username)
	assert.True(t, cached.Confirmed)
	assert.Empty(t, cached.PasswordHash)

	require.NoError(t, repo.Delete(ctx, 5))
	cached, err = repo.Get(ctx, 5)
	assert.NoError(t, err)
	assert.Nil(t, cached)
}

func TestUserCacheRepository_Expiry(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewUserCacheRepository(client, time.Second)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, &models.User{ID: 1, Username: "bob"}))
	mr.FastForward(2 * time.Second)

	cached, err := repo.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, cached)
}

func TestUserCacheRepository_CorruptEntry(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewUserCacheRepository(client, time.Minute)

	require.NoError(t, mr.Set("user:3", "{not json"))

	cached, err := repo.Get(context.Background(), 3)
	assert.Error(t, err)
	assert.Nil(t, cached)
}

func TestUserCacheRepository_ServerDown(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewUserCacheRepository(client, time.Minute)
	mr.Close()

	_, err := repo.Get(context.Background(), 1)
	assert.Error(t, err)
}
