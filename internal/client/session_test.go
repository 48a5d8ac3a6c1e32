package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSessionMissingFile(t *testing.T) {
	s, err := LoadSession(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServer, s.Server)
	assert.Empty(t, s.Token)
}

func TestSessionSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notesync", "session.yaml")

	want := &SessionFile{Server: "http://notes:9000", Token: "tok", Username: "alice"}
	require.NoError(t, want.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, ClearSession(path))
	require.NoError(t, ClearSession(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadSessionRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))
	_, err := LoadSession(path)
	assert.Error(t, err)
}
