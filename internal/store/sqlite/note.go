package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/store"
)

var _ store.NoteStore = (*NoteStore)(nil)

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

func scanNote(scanner interface{ Scan(...any) error }) (model.Note, error) {
	var n model.Note
	var tags string
	var createdAt, updatedAt int64

	err := scanner.Scan(&n.ID, &n.Title, &n.Content, &tags, &n.OwnerID, &createdAt, &updatedAt)
	if err != nil {
		return model.Note{}, err
	}

	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return model.Note{}, fmt.Errorf("decode tags: %w", err)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.CreatedAt = fromNanos(createdAt)
	n.UpdatedAt = fromNanos(updatedAt)
	return n, nil
}

const noteCols = `id, title, content, tags, owner_id, created_at, updated_at`

func (s *NoteStore) Create(ctx context.Context, note model.Note) (model.Note, error) {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}

	tags, err := encodeTags(note.Tags)
	if err != nil {
		return model.Note{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteCols+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content, tags, note.OwnerID,
		note.CreatedAt.UnixNano(), note.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("insert note: %w", err)
	}
	return s.GetByID(ctx, note.ID)
}

func (s *NoteStore) GetByID(ctx context.Context, id string) (model.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteCols+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, model.ErrNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// List returns notes matching filter, newest first.
func (s *NoteStore) List(ctx context.Context, filter model.NoteFilter) ([]model.Note, error) {
	var where []string
	var args []any
	if filter.Tag != "" {
		where = append(where, `EXISTS (SELECT 1 FROM json_each(notes.tags) WHERE json_each.value = ?)`)
		args = append(args, filter.Tag)
	}
	if filter.OwnerID != "" {
		where = append(where, `owner_id = ?`)
		args = append(args, filter.OwnerID)
	}

	query := `SELECT ` + noteCols + ` FROM notes`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *NoteStore) UpdateOwned(ctx context.Context, id, ownerID string, patch model.NotePatch, at time.Time) (model.Note, error) {
	var tags sql.NullString
	if patch.Tags != nil {
		encoded, err := encodeTags(*patch.Tags)
		if err != nil {
			return model.Note{}, err
		}
		tags = sql.NullString{String: encoded, Valid: true}
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE notes SET
		   title = COALESCE(?, title),
		   content = COALESCE(?, content),
		   tags = COALESCE(?, tags),
		   updated_at = MAX(?, updated_at + 1)
		 WHERE id = ? AND owner_id = ?`,
		nullString(patch.Title), nullString(patch.Content), tags, at.UnixNano(), id, ownerID,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}
	if err := s.checkOwnedWrite(ctx, result, id); err != nil {
		return model.Note{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *NoteStore) DeleteOwned(ctx context.Context, id, ownerID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return s.checkOwnedWrite(ctx, result, id)
}

// checkOwnedWrite tells a missing note apart from a foreign one once an
// owner-scoped statement touched no rows.
func (s *NoteStore) checkOwnedWrite(ctx context.Context, result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM notes WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check note: %w", err)
	}
	return model.ErrNotAuthorized
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
