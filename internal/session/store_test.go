package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickify/gateway/internal/catalog"
	"github.com/tickify/gateway/internal/models"
)

func TestCreateAndGetInMemory(t *testing.T) {
	store := NewStore(nil, time.Hour)

	sess, err := store.Create(context.Background(), "upstream-token", models.User{ID: "u-1", Role: "user"})
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "upstream-token", got.Token)
	assert.Equal(t, "u-1", got.User.ID)

	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscribersSeeEveryMutation(t *testing.T) {
	store := NewStore(nil, time.Hour)

	var seen []string
	unsubscribe := store.Subscribe(func(sess Session) {
		seen = append(seen, sess.User.FullName)
	})

	sess, err := store.Create(context.Background(), "tok", models.User{ID: "u-1", FullName: "Before"})
	require.NoError(t, err)

	sess.User.FullName = "After"
	require.NoError(t, store.Update(context.Background(), sess))

	unsubscribe()
	sess.User.FullName = "Unseen"
	require.NoError(t, store.Update(context.Background(), sess))

	assert.Equal(t, []string{"Before", "After"}, seen)
}

func TestDeleteNotifiesWithClearedToken(t *testing.T) {
	store := NewStore(nil, time.Hour)

	sess, err := store.Create(context.Background(), "tok", models.User{ID: "u-1"})
	require.NoError(t, err)

	var last Session
	store.Subscribe(func(s Session) { last = s })

	require.NoError(t, store.Delete(context.Background(), sess.ID))
	assert.Empty(t, last.Token, "logout broadcast must not leak the upstream token")

	_, err = store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(context.Background(), "already-gone"))
}

func TestRedisPersistence(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, time.Hour)

	sess := Session{ID: "s-1", Token: "tok", User: models.User{ID: "u-1"}, CreatedAt: time.Now().UTC()}
	raw, err := json.Marshal(sess)
	require.NoError(t, err)

	mock.ExpectSet("session:s-1", raw, time.Hour).SetVal("OK")
	require.NoError(t, store.save(context.Background(), sess))

	mock.ExpectGet("session:s-1").SetVal(string(raw))
	got, err := store.Get(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)

	mock.ExpectGet("session:missing").RedisNil()
	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWindowRoundTrip(t *testing.T) {
	store := NewStore(nil, time.Hour)

	win := catalog.NewWindow("fp").Advance()
	store.SetWindow(context.Background(), "s-1", win)
	assert.Equal(t, win, store.Window(context.Background(), "s-1"))

	assert.Zero(t, store.Window(context.Background(), "unknown").Limit, "missing window is the zero value")
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	sess := Session{ID: "s-9", User: models.User{Role: "admin"}}

	raw, err := MintToken(secret, sess, time.Hour)
	require.NoError(t, err)

	sid, err := ParseToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, "s-9", sid)

	_, err = ParseToken([]byte("other-secret"), raw)
	assert.Error(t, err)
}
