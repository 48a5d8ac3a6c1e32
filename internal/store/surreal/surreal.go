// Package surreal implements the store contracts on SurrealDB.
package surreal

import (
	"context"
	"fmt"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/dukerupert/notesync/internal/store"
)

const (
	noteTable = "note"
	userTable = "user"
)

var _ store.Store = (*Store)(nil)

type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

type Store struct {
	db    *surrealdb.DB
	notes *NoteStore
	users *UserStore
}

// Open connects, signs in, selects the namespace and database, and defines
// the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect surrealdb: %w", err)
	}

	if cfg.Username != "" {
		if _, err := db.SignIn(ctx, surrealdb.Auth{Username: cfg.Username, Password: cfg.Password}); err != nil {
			db.Close(ctx)
			return nil, fmt.Errorf("sign in: %w", err)
		}
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close(ctx)
		return nil, err
	}

	return New(db), nil
}

func New(db *surrealdb.DB) *Store {
	return &Store{db: db, notes: &NoteStore{db: db}, users: &UserStore{db: db}}
}

func (s *Store) Notes() store.NoteStore { return s.notes }
func (s *Store) Users() store.UserStore { return s.users }

func (s *Store) Close() error {
	return s.db.Close(context.Background())
}

const schema = `
DEFINE TABLE IF NOT EXISTS user SCHEMALESS;
DEFINE INDEX IF NOT EXISTS user_username ON user FIELDS username UNIQUE;
DEFINE INDEX IF NOT EXISTS user_email ON user FIELDS email UNIQUE;
DEFINE TABLE IF NOT EXISTS note SCHEMALESS;
DEFINE INDEX IF NOT EXISTS note_owner ON note FIELDS owner;
DEFINE INDEX IF NOT EXISTS note_created ON note FIELDS created_at;
`

// Migrate is idempotent.
func Migrate(ctx context.Context, db *surrealdb.DB) error {
	results, err := surrealdb.Query[any](ctx, db, schema, nil)
	if err != nil {
		return fmt.Errorf("define schema: %w", err)
	}
	for _, r := range *results {
		if r.Status != "OK" {
			return fmt.Errorf("define schema: %v", r.Result)
		}
	}
	return nil
}

// isUniqueViolation matches the message SurrealDB raises when a UNIQUE index
// or an existing record id rejects a write.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "already contains") || strings.Contains(msg, "already exists")
}
