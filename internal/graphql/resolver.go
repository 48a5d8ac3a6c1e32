package graphql

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/dukerupert/notesync/internal/accounts"
	"github.com/dukerupert/notesync/internal/auth"
	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/notes"
	"github.com/dukerupert/notesync/internal/store"
)

// Resolver is the root for both Query and Mutation.
type Resolver struct {
	notes    *notes.Service
	accounts *accounts.Service
	users    store.UserStore
	logger   *slog.Logger
}

type createNoteInput struct {
	Title   string
	Content string
	Tags    *[]string
}

type updateNoteInput struct {
	Title   *string
	Content *string
	Tags    *[]string
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	caller, err := auth.CallerFrom(ctx)
	if err != nil {
		return nil, r.publicError(err)
	}
	u, err := r.accounts.Me(ctx, caller)
	if err != nil {
		return nil, r.publicError(err)
	}
	return &userResolver{u: u}, nil
}

func (r *Resolver) Notes(ctx context.Context, args struct {
	Tag   *string
	Owner *graphql.ID
}) ([]*noteResolver, error) {
	caller, err := auth.CallerFrom(ctx)
	if err != nil {
		return nil, r.publicError(err)
	}

	var filter model.NoteFilter
	if args.Tag != nil {
		filter.Tag = *args.Tag
	}
	if args.Owner != nil {
		filter.OwnerID = string(*args.Owner)
	}

	list, err := r.notes.ListNotes(ctx, caller, filter)
	if err != nil {
		return nil, r.publicError(err)
	}
	owners := r.newOwners()
	out := make([]*noteResolver, len(list))
	for i := range list {
		out[i] = &noteResolver{n: list[i], owners: owners}
	}
	return out, nil
}

func (r *Resolver) Note(ctx context.Context, args struct{ ID graphql.ID }) (*noteResolver, error) {
	caller, err := auth.CallerFrom(ctx)
	if err != nil {
		return nil, r.publicError(err)
	}
	n, err := r.notes.GetNote(ctx, caller, string(args.ID))
	if err != nil {
		return nil, r.publicError(err)
	}
	return r.note(n), nil
}

func (r *Resolver) CreateNote(ctx context.Context, args struct{ Input createNoteInput }) (*noteResolver, error) {
	caller, err := auth.CallerFrom(ctx)
	if err != nil {
		return nil, r.publicError(err)
	}

	in := model.NoteInput{Title: args.Input.Title, Content: args.Input.Content}
	if args.Input.Tags != nil {
		in.Tags = *args.Input.Tags
	}
	n, err := r.notes.CreateNote(ctx, caller, in)
	if err != nil {
		return nil, r.publicError(err)
	}
	return r.note(n), nil
}

func (r *Resolver) UpdateNote(ctx context.Context, args struct {
	ID    graphql.ID
	Input updateNoteInput
}) (*noteResolver, error) {
	caller, err := auth.CallerFrom(ctx)
	if err != nil {
		return nil, r.publicError(err)
	}

	n, err := r.notes.UpdateNote(ctx, caller, string(args.ID), model.NotePatch{
		Title:   args.Input.Title,
		Content: args.Input.Content,
		Tags:    args.Input.Tags,
	})
	if err != nil {
		return nil, r.publicError(err)
	}
	return r.note(n), nil
}

func (r *Resolver) DeleteNote(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	caller, err := auth.CallerFrom(ctx)
	if err != nil {
		return false, r.publicError(err)
	}
	if err := r.notes.DeleteNote(ctx, caller, string(args.ID)); err != nil {
		return false, r.publicError(err)
	}
	return true, nil
}

func (r *Resolver) note(n model.Note) *noteResolver {
	return &noteResolver{n: n, owners: r.newOwners()}
}

func (r *Resolver) newOwners() *ownerCache {
	return &ownerCache{users: r.users, root: r, byID: map[string]model.User{}}
}

// ownerCache loads each owner once for the notes of a single operation.
// Field resolvers may run in parallel.
type ownerCache struct {
	users store.UserStore
	root  *Resolver

	mu   sync.Mutex
	byID map[string]model.User
}

func (c *ownerCache) get(ctx context.Context, id string) (model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if u, ok := c.byID[id]; ok {
		return u, nil
	}
	u, err := c.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, errors.New("owner not found")
	}
	if err != nil {
		return model.User{}, c.root.publicError(err)
	}
	c.byID[id] = u
	return u, nil
}

// publicError maps a domain error onto the message returned to clients.
func (r *Resolver) publicError(err error) error {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return errors.New(ve.Error())
	case errors.Is(err, model.ErrNotAuthenticated):
		return errors.New("not authenticated")
	case errors.Is(err, model.ErrNotFound):
		return errors.New("note not found")
	case errors.Is(err, model.ErrNotAuthorized):
		return errors.New("not authorized")
	case errors.Is(err, model.ErrConflict):
		return errors.New("user already exists")
	default:
		r.logger.Error("resolver failed", "error", err)
		return errors.New("internal error")
	}
}

type noteResolver struct {
	n      model.Note
	owners *ownerCache
}

func (r *noteResolver) ID() graphql.ID    { return graphql.ID(r.n.ID) }
func (r *noteResolver) Title() string     { return r.n.Title }
func (r *noteResolver) Content() string   { return r.n.Content }
func (r *noteResolver) CreatedAt() string { return formatTime(r.n.CreatedAt) }
func (r *noteResolver) UpdatedAt() string { return formatTime(r.n.UpdatedAt) }

func (r *noteResolver) Tags() []string {
	if r.n.Tags == nil {
		return []string{}
	}
	return r.n.Tags
}

func (r *noteResolver) Owner(ctx context.Context) (*userResolver, error) {
	u, err := r.owners.get(ctx, r.n.OwnerID)
	if err != nil {
		return nil, err
	}
	return &userResolver{u: u}, nil
}

type userResolver struct {
	u model.User
}

func (r *userResolver) ID() graphql.ID    { return graphql.ID(r.u.ID) }
func (r *userResolver) Username() string  { return r.u.Username }
func (r *userResolver) Email() string     { return r.u.Email }
func (r *userResolver) CreatedAt() string { return formatTime(r.u.CreatedAt) }

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
