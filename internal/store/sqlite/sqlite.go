// Package sqlite implements the store contracts on an embedded SQLite
// database migrated by goose.
package sqlite

import (
	"database/sql"

	"github.com/dukerupert/notesync/internal/database"
	"github.com/dukerupert/notesync/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	db    *sql.DB
	notes *NoteStore
	users *UserStore
}

// Open opens (and migrates) the database at path.
func Open(path string) (*Store, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db, notes: NewNoteStore(db), users: NewUserStore(db)}
}

func (s *Store) Notes() store.NoteStore { return s.notes }
func (s *Store) Users() store.UserStore { return s.users }
func (s *Store) Close() error           { return s.db.Close() }
