package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/notesync/internal/auth"
	"github.com/dukerupert/notesync/internal/client"
	"github.com/dukerupert/notesync/internal/database"
	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/server"
	"github.com/dukerupert/notesync/internal/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authn := auth.NewAuthenticator("secret", time.Hour, logger)
	srv := server.New(sqlite.New(db), authn, server.Options{BcryptCost: bcrypt.MinCost}, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

type cli struct {
	server  string
	session string
}

func (c cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--server", c.server, "--session", c.session}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func createdID(t *testing.T, out string) string {
	t.Helper()
	first, _, _ := strings.Cut(out, "\n")
	id, ok := strings.CutPrefix(first, "Created note ")
	require.True(t, ok, out)
	return id
}

func TestCLINoteWorkflow(t *testing.T) {
	ts := newTestServer(t)
	c := cli{server: ts.URL, session: filepath.Join(t.TempDir(), "session.yaml")}

	out, err := c.run(t, "register", "alice", "alice@example.com", "password")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice")

	sess, err := client.LoadSession(c.session)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.NotEmpty(t, sess.Token)

	out, err = c.run(t, "me")
	require.NoError(t, err)
	assert.Contains(t, out, "alice@example.com")

	out, err = c.run(t, "create-note", "Hello", "World", "intro", "go")
	require.NoError(t, err)
	id := createdID(t, out)
	assert.Contains(t, out, "Tags:    intro, go")
	assert.Contains(t, out, "Owner:   alice (alice@example.com)")

	out, err = c.run(t, "create-note-rest", "Second", "Body")
	require.NoError(t, err)
	restID := createdID(t, out)

	out, err = c.run(t, "list-notes")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], restID), "newest first: %q", out)
	assert.True(t, strings.HasPrefix(lines[1], id))

	out, err = c.run(t, "get-note", id)
	require.NoError(t, err)
	assert.Contains(t, out, "World")

	out, err = c.run(t, "update-note", id, "-t", "Renamed")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated note "+id)

	out, err = c.run(t, "get-note", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed")
	assert.Contains(t, out, "World")

	out, err = c.run(t, "delete-note", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted note "+id)

	_, err = c.run(t, "get-note", id)
	assert.EqualError(t, err, "note not found")

	out, err = c.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = c.run(t, "get-note", restID)
	assert.ErrorContains(t, err, "not authenticated")
}

func TestCLILoginRejectsBadPassword(t *testing.T) {
	ts := newTestServer(t)
	c := cli{server: ts.URL, session: filepath.Join(t.TempDir(), "session.yaml")}

	_, err := c.run(t, "register", "bob", "bob@example.com", "password")
	require.NoError(t, err)
	_, err = c.run(t, "logout")
	require.NoError(t, err)

	_, err = c.run(t, "login", "bob", "nope")
	assert.ErrorContains(t, err, "invalid credentials")

	out, err := c.run(t, "login", "bob", "password")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as bob")
}

func TestPrintEvent(t *testing.T) {
	note := &model.Note{ID: "n1", Title: "Hello", Tags: []string{"a", "b"}, Owner: &model.Author{ID: "u1", Username: "alice"}}
	tests := []struct {
		name string
		ev   model.Event
		want []string
	}{
		{"added", model.NoteAdded(*note), []string{"NEW NOTE", "Hello", "by alice", "a, b"}},
		{"updated", model.NoteUpdated(*note), []string{"UPDATED NOTE", "Hello", "by alice"}},
		{"deleted", model.NoteDeleted("n1", "alice"), []string{"DELETED NOTE", "ID: n1", "by alice"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printEvent(&buf, tt.ev)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}

	var buf bytes.Buffer
	printEvent(&buf, model.Event{Type: "somethingElse"})
	assert.Empty(t, buf.String())
}
