package session

import (
	"context"
	"testing"
	"time"

	"mingle/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, time.Hour), mr
}

func TestStore_CreateGetDestroy(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	user := &models.User{ID: 7, Username: "alice"}

	sid, err := store.Create(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	ident, err := store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, uint(7), ident.UserID)
	assert.Equal(t, "alice", ident.Username)

	require.NoError(t, store.Destroy(ctx, sid))

	_, err = store.Get(ctx, sid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetUnknownSession(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DestroyIsIdempotent(t *testing.T) {
	store, _ := setupStore(t)
	assert.NoError(t, store.Destroy(context.Background(), "never-existed"))
}

func TestStore_PresenceFollowsSessions(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	user := &models.User{ID: 3, Username: "bob"}

	online, err := store.IsOnline(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, online)

	sid1, err := store.Create(ctx, user)
	require.NoError(t, err)
	sid2, err := store.Create(ctx, user)
	require.NoError(t, err)

	online, err = store.IsOnline(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, online)

	// still online while one session remains
	require.NoError(t, store.Destroy(ctx, sid1))
	online, err = store.IsOnline(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, online)

	require.NoError(t, store.Destroy(ctx, sid2))
	online, err = store.IsOnline(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, online)
}

func TestStore_PresencePrunesExpiredSessions(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	user := &models.User{ID: 4, Username: "carol"}

	sid, err := store.Create(ctx, user)
	require.NoError(t, err)

	// Expire the session hash but leave the presence set behind.
	mr.FastForward(2 * time.Hour)

	online, err := store.IsOnline(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, online)

	_, err = store.Get(ctx, sid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_OnlineFriendsKeepsOrderAndDeduplicates(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	first := models.User{ID: 10, Username: "first"}
	second := models.User{ID: 11, Username: "second"}
	third := models.User{ID: 12, Username: "third"}

	// second holds two concurrent sessions; third is offline
	_, err := store.Create(ctx, &first)
	require.NoError(t, err)
	_, err = store.Create(ctx, &second)
	require.NoError(t, err)
	_, err = store.Create(ctx, &second)
	require.NoError(t, err)

	online, err := store.OnlineFriends(ctx, []models.User{first, second, third})
	require.NoError(t, err)

	require.Len(t, online, 2)
	assert.Equal(t, uint(10), online[0].ID)
	assert.Equal(t, uint(11), online[1].ID)
}

func TestStore_FlashIsReadOnce(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	sid := "flash-sid"

	require.NoError(t, store.SetError(ctx, sid, "something broke"))
	require.NoError(t, store.SetSuccess(ctx, sid, "it worked"))

	flash, err := store.PopFlash(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "something broke", flash.Error)
	assert.Equal(t, "it worked", flash.Success)

	// consumed by the first read
	flash, err = store.PopFlash(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, flash.Error)
	assert.Empty(t, flash.Success)
}

func TestStore_FlashNoSessionIsNoop(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	assert.NoError(t, store.SetError(ctx, "", "dropped"))

	flash, err := store.PopFlash(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, flash.Error)
}
