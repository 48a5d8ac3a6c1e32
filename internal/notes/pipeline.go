// Package notes validates and applies note mutations and dispatches the
// resulting events.
package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/store"
)

// Pipeline turns a caller's intent into a committed store mutation plus the
// event describing it. It never publishes.
type Pipeline struct {
	notes store.NoteStore
	users store.UserStore
	now   func() time.Time
}

func NewPipeline(notes store.NoteStore, users store.UserStore) *Pipeline {
	return &Pipeline{notes: notes, users: users, now: time.Now}
}

func (p *Pipeline) CreateNote(ctx context.Context, caller model.Caller, in model.NoteInput) (model.Note, model.Event, error) {
	if caller.ID == "" {
		return model.Note{}, model.Event{}, model.ErrNotAuthenticated
	}
	if isBlank(in.Title) {
		return model.Note{}, model.Event{}, model.Required("title")
	}
	if isBlank(in.Content) {
		return model.Note{}, model.Event{}, model.Required("content")
	}

	owner, err := p.users.GetByID(ctx, caller.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Note{}, model.Event{}, model.ErrNotAuthenticated
	}
	if err != nil {
		return model.Note{}, model.Event{}, err
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	now := p.now().UTC()
	n, err := p.notes.Create(ctx, model.Note{
		Title:     in.Title,
		Content:   in.Content,
		Tags:      tags,
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Note{}, model.Event{}, err
	}
	n.Owner = owner.Author()

	return n, model.NoteAdded(n), nil
}

func (p *Pipeline) UpdateNote(ctx context.Context, caller model.Caller, id string, patch model.NotePatch) (model.Note, model.Event, error) {
	if caller.ID == "" {
		return model.Note{}, model.Event{}, model.ErrNotAuthenticated
	}
	if patch.Title != nil && isBlank(*patch.Title) {
		return model.Note{}, model.Event{}, model.Required("title")
	}
	if patch.Content != nil && isBlank(*patch.Content) {
		return model.Note{}, model.Event{}, model.Required("content")
	}

	n, err := p.notes.UpdateOwned(ctx, id, caller.ID, patch, p.now().UTC())
	if err != nil {
		return model.Note{}, model.Event{}, err
	}
	n.Owner = caller.Author()

	return n, model.NoteUpdated(n), nil
}

func (p *Pipeline) DeleteNote(ctx context.Context, caller model.Caller, id string) (model.Event, error) {
	if caller.ID == "" {
		return model.Event{}, model.ErrNotAuthenticated
	}
	if err := p.notes.DeleteOwned(ctx, id, caller.ID); err != nil {
		return model.Event{}, err
	}
	return model.NoteDeleted(id, caller.Username), nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
