package deso

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionStores(t *testing.T) map[string]SessionStore {
	dir := t.TempDir()

	sqlite, err := NewSqliteSessionStore(filepath.Join(dir, "session.db"))
	require.Nil(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]SessionStore{
		"memory": NewInMemorySessionStore(),
		"file":   NewFileSessionStore(filepath.Join(dir, "nested", "session.cbor")),
		"sqlite": sqlite,
	}
}

func TestSessionStore_GetSetDelete(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get("missing")
			require.Nil(t, err)
			assert.False(t, ok)

			require.Nil(t, store.Set("a", []byte{1, 2, 3}))
			require.Nil(t, store.Set("b", nil))

			value, ok, err := store.Get("a")
			require.Nil(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte{1, 2, 3}, value)

			value, ok, err = store.Get("b")
			require.Nil(t, err)
			assert.True(t, ok)
			assert.Empty(t, value)

			require.Nil(t, store.Set("a", []byte{9}))
			value, _, err = store.Get("a")
			require.Nil(t, err)
			assert.Equal(t, []byte{9}, value)

			require.Nil(t, store.Delete("a"))
			require.Nil(t, store.Delete("a"))
			_, ok, err = store.Get("a")
			require.Nil(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSessionStore_CopiesValues(t *testing.T) {
	store := NewInMemorySessionStore()
	value := []byte{1}
	require.Nil(t, store.Set("a", value))
	value[0] = 2

	stored, _, err := store.Get("a")
	require.Nil(t, err)
	assert.Equal(t, []byte{1}, stored)
}

func TestSession_SaveLoadClear(t *testing.T) {
	key := newTestKey(t, 0x31, NetworkMainNet)
	session := &Session{PublicKey: key.base58, SessionToken: "token", Network: NetworkMainNet}

	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			loaded, err := LoadSession(store)
			require.Nil(t, err)
			assert.Nil(t, loaded)

			require.Nil(t, SaveSession(store, session, "https://identity.deso.org"))

			loaded, err = LoadSession(store)
			require.Nil(t, err)
			assert.Equal(t, session, loaded)

			userKey, ok, err := store.Get(SessionKeyUserKey)
			require.Nil(t, err)
			assert.True(t, ok)
			assert.Equal(t, key.base58, string(userKey))

			require.Nil(t, ClearSession(store))
			loaded, err = LoadSession(store)
			require.Nil(t, err)
			assert.Nil(t, loaded)

			uri, ok, err := store.Get(SessionKeyIdentityURI)
			require.Nil(t, err)
			assert.True(t, ok, "identity uri outlives the session")
			assert.Equal(t, "https://identity.deso.org", string(uri))
		})
	}
}

func TestSession_EncodingIsDeterministic(t *testing.T) {
	session := &Session{PublicKey: "BC1", SessionToken: "t", Network: NetworkTestNet}

	first, err := session.MarshalCBOR()
	require.Nil(t, err)
	second, err := session.MarshalCBOR()
	require.Nil(t, err)
	assert.Equal(t, first, second)
}

func TestSession_CorruptRecord(t *testing.T) {
	store := NewInMemorySessionStore()
	require.Nil(t, store.Set(SessionKeyUser, []byte{0xff, 0x00}))

	session, err := LoadSession(store)
	assert.NotNil(t, err)
	assert.Nil(t, session)
}

func TestFileSessionStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.cbor")

	require.Nil(t, NewFileSessionStore(path).Set("a", []byte("value")))

	value, ok, err := NewFileSessionStore(path).Get("a")
	require.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), value)

	require.Nil(t, os.WriteFile(path, []byte("not cbor"), 0o600))
	_, _, err = NewFileSessionStore(path).Get("a")
	assert.NotNil(t, err)
}
