package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/session"
)

func newTestStore(t *testing.T) *session.FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return session.NewFileStore(path, zerolog.Nop())
}

func testSession() *session.Session {
	return &session.Session{
		AccessToken: "abc123",
		TokenType:   "bearer",
		Username:    "operator",
		LoginTime:   time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(testSession()))

	got, err := store.Read()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, testSession(), got)
}

func TestFileStoreReadAbsent(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Read()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestFileStoreSaveReplacesPriorValue(t *testing.T) {
	store := newTestStore(t)

	first := testSession()
	require.NoError(t, store.Save(first))

	second := testSession()
	second.AccessToken = "def456"
	second.Username = "someone.else"
	require.NoError(t, store.Save(second))

	got, err := store.Read()
	require.NoError(t, err)
	require.Equal(t, "def456", got.AccessToken)
	require.Equal(t, "someone.else", got.Username)
}

func TestFileStoreSaveIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Save(testSession()))

	got, err := store.Read()
	require.NoError(t, err)
	require.Equal(t, testSession(), got)
}

func TestFileStoreSaveRejectsEmptyToken(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(&session.Session{Username: "operator"})
	require.Error(t, err)

	got, err := store.Read()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestFileStoreClear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())

	got, err := store.Read()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestFileStoreClearIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

func TestFileStoreMalformedFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := session.NewFileStore(path, zerolog.Nop())

	got, err := store.Read()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestFileStoreTokenlessFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"operator"}`), 0o600))

	store := session.NewFileStore(path, zerolog.Nop())

	got, err := store.Read()
	require.NoError(t, err)
	require.Nil(t, got)
}
