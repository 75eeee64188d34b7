package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/pontobip/internal/domain/model"
)

func newTestRedisStore(t *testing.T, now time.Time) (*RedisStore, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Hour)
	store.now = func() time.Time { return now }
	store.newID = func() string { return "sess-1" }
	return store, mock
}

func TestRedisStore_Create(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store, mock := newTestRedisStore(t, now)

	expected := model.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Role:      model.RoleAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	payload, err := json.Marshal(&expected)
	require.NoError(t, err)

	mock.ExpectSet("session:sess-1", string(payload), time.Hour).SetVal("OK")
	mock.ExpectSAdd("session:user:user-1", "sess-1").SetVal(1)
	mock.ExpectExpire("session:user:user-1", time.Hour).SetVal(true)

	sess, err := store.Create(context.Background(), "user-1", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, expected, *sess)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_CreateError(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store, mock := newTestRedisStore(t, now)

	payload, err := json.Marshal(&model.Session{
		ID: "sess-1", UserID: "user-1", Role: model.RoleCollaborator,
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)
	mock.ExpectSet("session:sess-1", string(payload), time.Hour).SetErr(errors.New("down"))

	_, err = store.Create(context.Background(), "user-1", model.RoleCollaborator)
	assert.ErrorContains(t, err, "store session")

	mock.ExpectSet("session:sess-1", string(payload), time.Hour).SetVal("OK")
	mock.ExpectSAdd("session:user:user-1", "sess-1").SetErr(errors.New("down"))

	_, err = store.Create(context.Background(), "user-1", model.RoleCollaborator)
	assert.ErrorContains(t, err, "index session")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Lookup(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store, mock := newTestRedisStore(t, now)

	stored := model.Session{
		ID: "sess-1", UserID: "user-1", Role: model.RoleManager,
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	payload, err := json.Marshal(&stored)
	require.NoError(t, err)

	mock.ExpectGet("session:sess-1").SetVal(string(payload))
	mock.ExpectGet("session:missing").RedisNil()
	mock.ExpectGet("session:broken").SetErr(errors.New("down"))

	sess, err := store.Lookup(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, model.RoleManager, sess.Role)

	_, err = store.Lookup(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Lookup(context.Background(), "broken")
	assert.ErrorContains(t, err, "load session")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_LookupExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store, mock := newTestRedisStore(t, now)

	payload, err := json.Marshal(&model.Session{
		ID: "sess-1", UserID: "user-1", Role: model.RoleCollaborator,
		CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	mock.ExpectGet("session:sess-1").SetVal(string(payload))

	_, err = store.Lookup(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Destroy(t *testing.T) {
	store, mock := newTestRedisStore(t, time.Now())

	mock.ExpectDel("session:sess-1").SetVal(1)
	mock.ExpectDel("session:sess-2").SetErr(errors.New("down"))

	assert.NoError(t, store.Destroy(context.Background(), "sess-1"))
	assert.ErrorContains(t, store.Destroy(context.Background(), "sess-2"), "delete session")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_DestroyByUser(t *testing.T) {
	store, mock := newTestRedisStore(t, time.Now())

	mock.ExpectSMembers("session:user:user-1").SetVal([]string{"sess-1", "sess-2"})
	mock.ExpectDel("session:sess-1", "session:sess-2", "session:user:user-1").SetVal(3)
	mock.ExpectSMembers("session:user:user-2").SetVal([]string{})
	mock.ExpectDel("session:user:user-2").SetVal(0)
	mock.ExpectSMembers("session:user:user-3").SetErr(errors.New("down"))

	assert.NoError(t, store.DestroyByUser(context.Background(), "user-1"))
	assert.NoError(t, store.DestroyByUser(context.Background(), "user-2"))
	assert.ErrorContains(t, store.DestroyByUser(context.Background(), "user-3"), "load user sessions")
	assert.NoError(t, mock.ExpectationsWereMet())
}
