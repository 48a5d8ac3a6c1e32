package surreal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/store"
)

var _ store.UserStore = (*UserStore)(nil)

type UserStore struct {
	db *surrealdb.DB
}

func (s *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	created, err := surrealdb.Create[userDoc](ctx, s.db, models.NewRecordID(userTable, user.ID), userToDoc(user))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, fmt.Errorf("create user: %w", model.ErrConflict)
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return created.toModel(), nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (model.User, error) {
	doc, err := surrealdb.Select[userDoc](ctx, s.db, models.NewRecordID(userTable, id))
	if err != nil {
		return model.User{}, fmt.Errorf("select user: %w", err)
	}
	if doc == nil || doc.ID == nil {
		return model.User{}, model.ErrNotFound
	}
	return doc.toModel(), nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	docs, err := queryDocs[userDoc](ctx, s.db,
		`SELECT * FROM user WHERE username = $username LIMIT 1`,
		map[string]any{"username": username},
	)
	if err != nil {
		return model.User{}, fmt.Errorf("get user by username: %w", err)
	}
	if len(docs) == 0 {
		return model.User{}, model.ErrNotFound
	}
	return docs[0].toModel(), nil
}
