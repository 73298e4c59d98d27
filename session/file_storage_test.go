package session_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vendaro/admin-console/session"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	fs, err := session.NewFileStorage(path)
	require.NoError(t, err)

	require.NoError(t, fs.Set(session.KeyAccessToken, "T1"))
	require.NoError(t, fs.Set(session.KeyRefreshToken, "R1"))

	// A fresh instance sees the persisted values.
	reopened, err := session.NewFileStorage(path)
	require.NoError(t, err)
	token, ok := reopened.Get(session.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "T1", token)

	require.NoError(t, reopened.Delete(session.KeyAccessToken))
	_, ok = reopened.Get(session.KeyAccessToken)
	require.False(t, ok)
}

func TestFileStorage_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "credentials.json")

	fs, err := session.NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set(session.KeyAccessToken, "T1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{garbage"), 0o600))

	fs, err := session.NewFileStorage(path)
	require.NoError(t, err)
	_, ok := fs.Get(session.KeyAccessToken)
	require.False(t, ok)
}

func TestFileStorage_RequiresPath(t *testing.T) {
	_, err := session.NewFileStorage("")
	require.Error(t, err)
}

func TestFileStorage_DeleteAbsentKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	fs, err := session.NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, fs.Delete("never-set"))
}
