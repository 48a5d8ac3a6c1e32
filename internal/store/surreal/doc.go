package surreal

import (
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/dukerupert/notesync/internal/model"
)

type noteDoc struct {
	ID        *models.RecordID       `json:"id,omitempty"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Tags      []string               `json:"tags"`
	Owner     string                 `json:"owner"`
	CreatedAt *models.CustomDateTime `json:"created_at,omitempty"`
	UpdatedAt *models.CustomDateTime `json:"updated_at,omitempty"`
}

type userDoc struct {
	ID           *models.RecordID       `json:"id,omitempty"`
	Username     string                 `json:"username"`
	Email        string                 `json:"email"`
	PasswordHash string                 `json:"password_hash"`
	CreatedAt    *models.CustomDateTime `json:"created_at,omitempty"`
}

func noteToDoc(n model.Note) *noteDoc {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return &noteDoc{
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		Owner:     n.OwnerID,
		CreatedAt: dateTime(n.CreatedAt),
		UpdatedAt: dateTime(n.UpdatedAt),
	}
}

func (d *noteDoc) toModel() model.Note {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Note{
		ID:        recordKey(d.ID),
		Title:     d.Title,
		Content:   d.Content,
		Tags:      tags,
		OwnerID:   d.Owner,
		CreatedAt: timeOf(d.CreatedAt),
		UpdatedAt: timeOf(d.UpdatedAt),
	}
}

func userToDoc(u model.User) *userDoc {
	return &userDoc{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    dateTime(u.CreatedAt),
	}
}

func (d *userDoc) toModel() model.User {
	return model.User{
		ID:           recordKey(d.ID),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    timeOf(d.CreatedAt),
	}
}

// recordKey strips the table from a record id, so note:abc becomes abc.
func recordKey(id *models.RecordID) string {
	if id == nil || id.ID == nil {
		return ""
	}
	if s, ok := id.ID.(string); ok {
		return s
	}
	return fmt.Sprint(id.ID)
}

func dateTime(t time.Time) *models.CustomDateTime {
	return &models.CustomDateTime{Time: t.UTC()}
}

func timeOf(dt *models.CustomDateTime) time.Time {
	if dt == nil {
		return time.Time{}
	}
	return dt.Time.UTC()
}
