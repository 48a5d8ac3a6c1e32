package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dukerupert/notesync/internal/model"
)

// Claims is the signed session payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// Authenticator issues and verifies HS256 session tokens.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthenticator(secret string, ttl time.Duration, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func (a *Authenticator) Issue(u model.User) (string, error) {
	if u.ID == "" {
		return "", errors.New("issue token: user has no id")
	}
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		UserID:   u.ID,
		Username: u.Username,
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate turns a bearer credential into a Caller. Every failure is
// reported as model.ErrNotAuthenticated.
func (a *Authenticator) Authenticate(credential string) (model.Caller, error) {
	raw := strings.TrimSpace(credential)
	if len(raw) >= 7 && strings.EqualFold(raw[:7], "Bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return model.Caller{}, model.ErrNotAuthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		a.logger.Debug("token rejected", "error", err)
		return model.Caller{}, model.ErrNotAuthenticated
	}
	if claims.UserID == "" {
		a.logger.Debug("token rejected", "error", "missing id claim")
		return model.Caller{}, model.ErrNotAuthenticated
	}

	return model.Caller{ID: claims.UserID, Username: claims.Username}, nil
}
