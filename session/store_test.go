package session_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vendaro/admin-console/session"
	"github.com/vendaro/admin-console/session/storagefakes"
)

var testUser = session.User{
	ID:    "u1",
	Name:  "Ann",
	Email: "a@b.com",
	Role:  "admin",
}

func newTestStore(t *testing.T) (*session.Store, *storagefakes.FakeStorage) {
	t.Helper()
	storage := storagefakes.NewFakeStorage()
	store, err := session.NewStore(storage)
	require.NoError(t, err)
	return store, storage
}

func TestNewStore_RequiresStorage(t *testing.T) {
	_, err := session.NewStore(nil)
	require.Error(t, err)
}

func TestStore_SaveSession(t *testing.T) {
	store, storage := newTestStore(t)

	require.NoError(t, store.SaveSession("T1", "R1", &testUser))

	token, ok := storage.Get(session.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "T1", token)

	refresh, ok := storage.Get(session.KeyRefreshToken)
	require.True(t, ok)
	require.Equal(t, "R1", refresh)

	raw, ok := storage.Get(session.KeyUser)
	require.True(t, ok)
	var stored session.User
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Equal(t, testUser, stored)

	require.True(t, store.Authenticated())
	require.Equal(t, &testUser, store.CurrentUser())
}

func TestStore_SaveSessionRollsBackOnStorageFailure(t *testing.T) {
	store, storage := newTestStore(t)
	storage.SetErr = errors.New("disk full")

	err := store.SaveSession("T1", "R1", &testUser)

	require.Error(t, err)
	require.Zero(t, storage.Len(), "no partial session persisted")
	require.False(t, store.Authenticated())
	require.Nil(t, store.CurrentUser())
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store, storage := newTestStore(t)
	require.NoError(t, store.SaveSession("T1", "R1", &testUser))

	store.Clear()
	store.Clear()

	require.Zero(t, storage.Len())
	require.False(t, store.Authenticated())
	require.Nil(t, store.CurrentUser())
}

func TestStore_SaveTokens(t *testing.T) {
	t.Run("refresh token kept when none issued", func(t *testing.T) {
		store, storage := newTestStore(t)
		require.NoError(t, store.SaveSession("T1", "R1", &testUser))

		require.NoError(t, store.SaveTokens("T2", ""))

		token, _ := storage.Get(session.KeyAccessToken)
		require.Equal(t, "T2", token)
		refresh, _ := storage.Get(session.KeyRefreshToken)
		require.Equal(t, "R1", refresh)
	})

	t.Run("refresh token replaced when issued", func(t *testing.T) {
		store, storage := newTestStore(t)
		require.NoError(t, store.SaveSession("T1", "R1", &testUser))

		require.NoError(t, store.SaveTokens("T2", "R2"))

		refresh, _ := storage.Get(session.KeyRefreshToken)
		require.Equal(t, "R2", refresh)
	})
}

func TestStore_Subscriptions(t *testing.T) {
	t.Run("replays latest value on subscribe", func(t *testing.T) {
		store, _ := newTestStore(t)
		require.NoError(t, store.SaveSession("T1", "R1", &testUser))

		var users []*session.User
		cancel := store.SubscribeUser(func(u *session.User) { users = append(users, u) })
		defer cancel()

		var authed []bool
		cancelAuth := store.SubscribeAuth(func(b bool) { authed = append(authed, b) })
		defer cancelAuth()

		require.Equal(t, []*session.User{&testUser}, users)
		require.Equal(t, []bool{true}, authed)
	})

	t.Run("emissions arrive in mutation order", func(t *testing.T) {
		store, _ := newTestStore(t)

		var authed []bool
		cancel := store.SubscribeAuth(func(b bool) { authed = append(authed, b) })
		defer cancel()

		require.NoError(t, store.SaveSession("T1", "R1", &testUser))
		store.Clear()
		require.NoError(t, store.SaveSession("T2", "R2", &testUser))

		require.Equal(t, []bool{false, true, false, true}, authed)
	})

	t.Run("multiple subscribers all notified", func(t *testing.T) {
		store, _ := newTestStore(t)

		var a, b int
		cancelA := store.SubscribeUser(func(*session.User) { a++ })
		defer cancelA()
		cancelB := store.SubscribeUser(func(*session.User) { b++ })
		defer cancelB()

		require.NoError(t, store.SaveSession("T1", "R1", &testUser))

		require.Equal(t, 2, a) // replay + login
		require.Equal(t, 2, b)
	})

	t.Run("cancelled subscriber stops receiving", func(t *testing.T) {
		store, _ := newTestStore(t)

		var calls int
		cancel := store.SubscribeUser(func(*session.User) { calls++ })
		cancel()

		require.NoError(t, store.SaveSession("T1", "R1", &testUser))
		require.Equal(t, 1, calls, "only the replay")
	})
}

func TestStore_Hydrate(t *testing.T) {
	t.Run("restores a persisted session", func(t *testing.T) {
		storage := storagefakes.NewFakeStorage()
		raw, err := json.Marshal(testUser)
		require.NoError(t, err)
		require.NoError(t, storage.Set(session.KeyAccessToken, "T1"))
		require.NoError(t, storage.Set(session.KeyRefreshToken, "R1"))
		require.NoError(t, storage.Set(session.KeyUser, string(raw)))

		store, err := session.NewStore(storage)
		require.NoError(t, err)

		require.True(t, store.Authenticated())
		require.Equal(t, testUser, *store.CurrentUser())
	})

	t.Run("corrupt user record triggers full logout", func(t *testing.T) {
		storage := storagefakes.NewFakeStorage()
		require.NoError(t, storage.Set(session.KeyAccessToken, "T1"))
		require.NoError(t, storage.Set(session.KeyRefreshToken, "R1"))
		require.NoError(t, storage.Set(session.KeyUser, "{not json"))

		store, err := session.NewStore(storage)
		require.NoError(t, err)

		require.False(t, store.Authenticated())
		require.Nil(t, store.CurrentUser())
		require.Zero(t, storage.Len(), "nothing partially hydrated survives")
	})

	t.Run("token without user stays logged out", func(t *testing.T) {
		storage := storagefakes.NewFakeStorage()
		require.NoError(t, storage.Set(session.KeyAccessToken, "T1"))

		store, err := session.NewStore(storage)
		require.NoError(t, err)

		require.False(t, store.Authenticated())
	})
}

func TestStore_TokenAccessors(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok := store.Token()
	require.False(t, ok)
	_, ok = store.RefreshToken()
	require.False(t, ok)

	require.NoError(t, store.SaveSession("T1", "R1", &testUser))

	token, ok := store.Token()
	require.True(t, ok)
	require.Equal(t, "T1", token)
	refresh, ok := store.RefreshToken()
	require.True(t, ok)
	require.Equal(t, "R1", refresh)
}
