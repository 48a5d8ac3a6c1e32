package surreal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/store"
)

var _ store.NoteStore = (*NoteStore)(nil)

type NoteStore struct {
	db *surrealdb.DB
}

func (s *NoteStore) Create(ctx context.Context, note model.Note) (model.Note, error) {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}

	created, err := surrealdb.Create[noteDoc](ctx, s.db, models.NewRecordID(noteTable, note.ID), noteToDoc(note))
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}
	return created.toModel(), nil
}

func (s *NoteStore) GetByID(ctx context.Context, id string) (model.Note, error) {
	doc, err := surrealdb.Select[noteDoc](ctx, s.db, models.NewRecordID(noteTable, id))
	if err != nil {
		return model.Note{}, fmt.Errorf("select note: %w", err)
	}
	if doc == nil || doc.ID == nil {
		return model.Note{}, model.ErrNotFound
	}
	return doc.toModel(), nil
}

func (s *NoteStore) List(ctx context.Context, filter model.NoteFilter) ([]model.Note, error) {
	var where []string
	vars := map[string]any{}
	if filter.Tag != "" {
		where = append(where, `$tag IN tags`)
		vars["tag"] = filter.Tag
	}
	if filter.OwnerID != "" {
		where = append(where, `owner = $owner`)
		vars["owner"] = filter.OwnerID
	}

	query := `SELECT * FROM note`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC`

	docs, err := queryDocs[noteDoc](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	notes := make([]model.Note, 0, len(docs))
	for i := range docs {
		notes = append(notes, docs[i].toModel())
	}
	return notes, nil
}

func (s *NoteStore) UpdateOwned(ctx context.Context, id, ownerID string, patch model.NotePatch, at time.Time) (model.Note, error) {
	rid := models.NewRecordID(noteTable, id)
	sets := []string{`updated_at = IF $at > updated_at THEN $at ELSE updated_at + 1ns END`}
	vars := map[string]any{
		"rid":   &rid,
		"owner": ownerID,
		"at":    dateTime(at),
	}
	if patch.Title != nil {
		sets = append(sets, `title = $title`)
		vars["title"] = *patch.Title
	}
	if patch.Content != nil {
		sets = append(sets, `content = $content`)
		vars["content"] = *patch.Content
	}
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		sets = append(sets, `tags = $tags`)
		vars["tags"] = tags
	}

	query := `UPDATE $rid SET ` + strings.Join(sets, `, `) + ` WHERE owner = $owner RETURN AFTER`
	docs, err := queryDocs[noteDoc](ctx, s.db, query, vars)
	if err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}
	if len(docs) == 0 {
		return model.Note{}, s.missOrForeign(ctx, id)
	}
	return docs[0].toModel(), nil
}

func (s *NoteStore) DeleteOwned(ctx context.Context, id, ownerID string) error {
	rid := models.NewRecordID(noteTable, id)
	docs, err := queryDocs[noteDoc](ctx, s.db,
		`DELETE $rid WHERE owner = $owner RETURN BEFORE`,
		map[string]any{"rid": &rid, "owner": ownerID},
	)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if len(docs) == 0 {
		return s.missOrForeign(ctx, id)
	}
	return nil
}

func (s *NoteStore) missOrForeign(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return model.ErrNotAuthorized
}

// queryDocs runs a single-statement query and returns its rows.
func queryDocs[T any](ctx context.Context, db *surrealdb.DB, query string, vars map[string]any) ([]T, error) {
	results, err := surrealdb.Query[[]T](ctx, db, query, vars)
	if err != nil {
		return nil, err
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	r := (*results)[0]
	if r.Status != "OK" {
		return nil, fmt.Errorf("query status %s", r.Status)
	}
	return r.Result, nil
}
