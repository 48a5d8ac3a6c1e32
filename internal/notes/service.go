package notes

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/store"
)

// Publisher receives events of committed mutations.
type Publisher interface {
	Publish(model.Event)
}

// Service is the entry point shared by every transport. Mutations run
// through the Pipeline and their events are published only on success;
// reads go straight to the store.
type Service struct {
	// mu spans each commit and its publish so subscribers see events in
	// commit order.
	mu        sync.Mutex
	pipeline  *Pipeline
	notes     store.NoteStore
	users     store.UserStore
	publisher Publisher
	logger    *slog.Logger
}

func NewService(s store.Store, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		pipeline:  NewPipeline(s.Notes(), s.Users()),
		notes:     s.Notes(),
		users:     s.Users(),
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) CreateNote(ctx context.Context, caller model.Caller, in model.NoteInput) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ev, err := s.pipeline.CreateNote(ctx, caller, in)
	if err != nil {
		return model.Note{}, err
	}
	s.dispatch(ev)
	return n, nil
}

func (s *Service) UpdateNote(ctx context.Context, caller model.Caller, id string, patch model.NotePatch) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ev, err := s.pipeline.UpdateNote(ctx, caller, id, patch)
	if err != nil {
		return model.Note{}, err
	}
	s.dispatch(ev)
	return n, nil
}

func (s *Service) DeleteNote(ctx context.Context, caller model.Caller, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.pipeline.DeleteNote(ctx, caller, id)
	if err != nil {
		return err
	}
	s.dispatch(ev)
	return nil
}

func (s *Service) GetNote(ctx context.Context, caller model.Caller, id string) (model.Note, error) {
	if caller.ID == "" {
		return model.Note{}, model.ErrNotAuthenticated
	}
	n, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	authors := map[string]*model.Author{}
	n.Owner, err = s.author(ctx, authors, n.OwnerID)
	if err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// ListNotes returns every note matching filter regardless of owner.
func (s *Service) ListNotes(ctx context.Context, caller model.Caller, filter model.NoteFilter) ([]model.Note, error) {
	if caller.ID == "" {
		return nil, model.ErrNotAuthenticated
	}
	list, err := s.notes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	authors := map[string]*model.Author{}
	for i := range list {
		list[i].Owner, err = s.author(ctx, authors, list[i].OwnerID)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *Service) author(ctx context.Context, cache map[string]*model.Author, id string) (*model.Author, error) {
	if a, ok := cache[id]; ok {
		return a, nil
	}
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		cache[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cache[id] = u.Author()
	return cache[id], nil
}

func (s *Service) dispatch(ev model.Event) {
	s.logger.Debug("publishing event", "type", ev.Type, "note_id", noteID(ev))
	s.publisher.Publish(ev)
}

func noteID(ev model.Event) string {
	if ev.Note != nil {
		return ev.Note.ID
	}
	return ev.ID
}
