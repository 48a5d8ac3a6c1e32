// Package store defines the persistence contracts for users and notes.
//
// Implementations return model.ErrNotFound for unknown ids, model.ErrNotAuthorized
// when an owner-scoped mutation targets another user's note, and model.ErrConflict
// on uniqueness violations.
package store

import (
	"context"
	"time"

	"github.com/dukerupert/notesync/internal/model"
)

type NoteStore interface {
	Create(ctx context.Context, note model.Note) (model.Note, error)
	GetByID(ctx context.Context, id string) (model.Note, error)
	List(ctx context.Context, filter model.NoteFilter) ([]model.Note, error)
	// UpdateOwned applies patch in a single conditional write that only
	// succeeds when the note is owned by ownerID. UpdatedAt becomes at, or one
	// tick past the stored value when at is not later.
	UpdateOwned(ctx context.Context, id, ownerID string, patch model.NotePatch, at time.Time) (model.Note, error)
	// DeleteOwned removes the note in a single conditional write scoped to ownerID.
	DeleteOwned(ctx context.Context, id, ownerID string) error
}

type UserStore interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// Store bundles the collections of one backend.
type Store interface {
	Notes() NoteStore
	Users() UserStore
	Close() error
}
