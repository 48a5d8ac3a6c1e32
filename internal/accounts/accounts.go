// Package accounts registers users and exchanges passwords for session tokens.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/store"
)

type TokenIssuer interface {
	Issue(u model.User) (string, error)
}

type Service struct {
	users      store.UserStore
	tokens     TokenIssuer
	bcryptCost int
	logger     *slog.Logger
}

func NewService(users store.UserStore, tokens TokenIssuer, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// Session is what register and login hand back to the client.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *Service) Register(ctx context.Context, username, email, password string) (Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return Session{}, model.Required("username")
	case email == "":
		return Session{}, model.Required("email")
	case password == "":
		return Session{}, model.Required("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return Session{}, err
	}
	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)

	return s.session(user)
}

func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, model.ErrNotFound) {
		return Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("login rejected", "username", user.Username)
		return Session{}, model.ErrInvalidCredentials
	}

	return s.session(user)
}

// Me resolves the caller to the stored user. A caller whose user no longer
// exists is treated as unauthenticated.
func (s *Service) Me(ctx context.Context, caller model.Caller) (model.User, error) {
	user, err := s.users.GetByID(ctx, caller.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrNotAuthenticated
	}
	return user, err
}

func (s *Service) session(user model.User) (Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user}, nil
}
