package notes

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/notesync/internal/database"
	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/store/sqlite"
)

type recorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *recorder) Publish(ev model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Event(nil), r.events...)
}

type fixture struct {
	svc   *Service
	store *sqlite.Store
	pub   *recorder
	alice model.Caller
	bob   model.Caller
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := sqlite.New(db)
	pub := &recorder{}
	f := &fixture{
		svc:   NewService(s, pub, slog.New(slog.NewTextHandler(io.Discard, nil))),
		store: s,
		pub:   pub,
	}
	for _, name := range []string{"alice", "bob"} {
		u, err := s.Users().Create(context.Background(), model.User{Username: name, Email: name + "@example.com", PasswordHash: "h"})
		require.NoError(t, err)
		if name == "alice" {
			f.alice = model.Caller{ID: u.ID, Username: u.Username}
		} else {
			f.bob = model.Caller{ID: u.ID, Username: u.Username}
		}
	}
	return f
}

func ptr[T any](v T) *T { return &v }

func TestCreateNote(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	n, err := f.svc.CreateNote(ctx, f.alice, model.NoteInput{Title: "Hi", Content: "World"})
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, n.OwnerID)
	assert.Equal(t, []string{}, n.Tags)
	require.NotNil(t, n.Owner)
	assert.Equal(t, "alice", n.Owner.Username)

	events := f.pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventNoteAdded, events[0].Type)
	assert.Equal(t, "Hi", events[0].Note.Title)
	assert.Equal(t, n.ID, events[0].Note.ID)
}

func TestCreateNoteValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    model.NoteInput
		field string
	}{
		{"blank title", model.NoteInput{Title: "  ", Content: "c"}, "title"},
		{"missing content", model.NoteInput{Title: "t"}, "content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateNote(ctx, f.alice, tt.in)
			var ve *model.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	list, err := f.store.Notes().List(ctx, model.NoteFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.pub.all())
}

func TestCreateNoteUnknownOwner(t *testing.T) {
	f := setup(t)
	_, err := f.svc.CreateNote(context.Background(), model.Caller{ID: "ghost", Username: "ghost"}, model.NoteInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
	assert.Empty(t, f.pub.all())
}

func TestMutationsRequireCaller(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateNote(ctx, model.Caller{}, model.NoteInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
	_, err = f.svc.UpdateNote(ctx, model.Caller{}, "x", model.NotePatch{})
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
	assert.ErrorIs(t, f.svc.DeleteNote(ctx, model.Caller{}, "x"), model.ErrNotAuthenticated)
	_, err = f.svc.ListNotes(ctx, model.Caller{}, model.NoteFilter{})
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
	assert.Empty(t, f.pub.all())
}

func TestPartialUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	n, err := f.svc.CreateNote(ctx, f.alice, model.NoteInput{Title: "A", Content: "B", Tags: []string{"x"}})
	require.NoError(t, err)

	updated, err := f.svc.UpdateNote(ctx, f.alice, n.ID, model.NotePatch{Content: ptr("C")})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, "C", updated.Content)
	assert.Equal(t, []string{"x"}, updated.Tags)
	assert.True(t, updated.UpdatedAt.After(n.UpdatedAt), "updatedAt %v not after %v", updated.UpdatedAt, n.UpdatedAt)

	events := f.pub.all()
	require.Len(t, events, 2)
	assert.Equal(t, model.EventNoteUpdated, events[1].Type)
	assert.Equal(t, "C", events[1].Note.Content)
}

func TestUpdateRejectsBlankField(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.CreateNote(ctx, f.alice, model.NoteInput{Title: "A", Content: "B"})
	require.NoError(t, err)

	_, err = f.svc.UpdateNote(ctx, f.alice, n.ID, model.NotePatch{Title: ptr("")})
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
	assert.Len(t, f.pub.all(), 1)
}

func TestNonOwnerUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.CreateNote(ctx, f.alice, model.NoteInput{Title: "A", Content: "B", Tags: []string{"x"}})
	require.NoError(t, err)
	before, err := f.store.Notes().GetByID(ctx, n.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateNote(ctx, f.bob, n.ID, model.NotePatch{Title: ptr("mine now"), Tags: ptr([]string{})})
	assert.ErrorIs(t, err, model.ErrNotAuthorized)

	after, err := f.store.Notes().GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, f.pub.all(), 1, "only the create event")
}

func TestDeleteNote(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.CreateNote(ctx, f.alice, model.NoteInput{Title: "A", Content: "B"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteNote(ctx, f.bob, n.ID), model.ErrNotAuthorized)
	require.NoError(t, f.svc.DeleteNote(ctx, f.alice, n.ID))

	events := f.pub.all()
	require.Len(t, events, 2)
	assert.Equal(t, model.NoteDeleted(n.ID, "alice"), events[1])

	_, err = f.svc.GetNote(ctx, f.alice, n.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteMissingNote(t *testing.T) {
	f := setup(t)
	err := f.svc.DeleteNote(context.Background(), f.alice, "does-not-exist")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Empty(t, f.pub.all())
}

func TestReadsAreGlobal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a, err := f.svc.CreateNote(ctx, f.alice, model.NoteInput{Title: "a", Content: "c", Tags: []string{"work"}})
	require.NoError(t, err)
	_, err = f.svc.CreateNote(ctx, f.bob, model.NoteInput{Title: "b", Content: "c", Tags: []string{"home"}})
	require.NoError(t, err)

	got, err := f.svc.GetNote(ctx, f.bob, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "alice", got.Owner.Username)

	all, err := f.svc.ListNotes(ctx, f.bob, model.NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, n := range all {
		assert.NotNil(t, n.Owner, "owner embedded for %s", n.Title)
	}

	work, err := f.svc.ListNotes(ctx, f.bob, model.NoteFilter{Tag: "work"})
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, "a", work[0].Title)

	bobs, err := f.svc.ListNotes(ctx, f.alice, model.NoteFilter{OwnerID: f.bob.ID})
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, "b", bobs[0].Title)
}

func TestConcurrentUpdatesPublishInCommitOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n, err := f.svc.CreateNote(ctx, f.alice, model.NoteInput{Title: "A", Content: "B"})
	require.NoError(t, err)

	const rounds, writers = 20, 10
	for r := 0; r < rounds; r++ {
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.svc.UpdateNote(ctx, f.alice, n.ID, model.NotePatch{Content: ptr("x")})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	}

	events := f.pub.all()
	require.Len(t, events, 1+rounds*writers)
	prev := events[0].Note.UpdatedAt
	for i, ev := range events[1:] {
		require.NotNil(t, ev.Note)
		assert.True(t, ev.Note.UpdatedAt.After(prev), "event %d: updatedAt %v not after %v", i+1, ev.Note.UpdatedAt, prev)
		prev = ev.Note.UpdatedAt
	}

	stored, err := f.store.Notes().GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.Equal(prev), "last published %v, stored %v", prev, stored.UpdatedAt)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ev model.Event) {
	m.Called(ev)
}

func TestServicePublishesOnlyOnSuccess(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	s := sqlite.New(db)
	u, err := s.Users().Create(context.Background(), model.User{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	caller := model.Caller{ID: u.ID, Username: u.Username}

	pub := &mockPublisher{}
	pub.On("Publish", mock.MatchedBy(func(ev model.Event) bool {
		return ev.Type == model.EventNoteAdded && ev.Note.Title == "Hi"
	})).Once()

	svc := NewService(s, pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err = svc.CreateNote(context.Background(), caller, model.NoteInput{Title: "Hi", Content: "World"})
	require.NoError(t, err)
	_, err = svc.CreateNote(context.Background(), caller, model.NoteInput{Title: "", Content: "World"})
	require.Error(t, err)

	pub.AssertExpectations(t)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}
