package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukerupert/notesync/internal/auth"
	"github.com/dukerupert/notesync/internal/model"
)

func setupAuthenticator(t *testing.T) (*auth.Authenticator, string) {
	t.Helper()
	authn := auth.NewAuthenticator("secret", time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	token, err := authn.Issue(model.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return authn, token
}

func TestRequireAuthNoHeader(t *testing.T) {
	authn, _ := setupAuthenticator(t)

	handler := RequireAuth(authn)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	authn, _ := setupAuthenticator(t)

	handler := RequireAuth(authn)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	authn, token := setupAuthenticator(t)

	var got model.Caller
	handler := RequireAuth(authn)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.ID != "u1" || got.Username != "alice" {
		t.Errorf("caller = %+v", got)
	}
}

func TestOptionalAuth(t *testing.T) {
	authn, token := setupAuthenticator(t)

	var seen bool
	handler := OptionalAuth(authn)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seen = auth.FromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"none", "", false},
		{"invalid", "Bearer nope", false},
		{"valid", "Bearer " + token, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/graphql", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if seen != tt.want {
				t.Errorf("caller attached = %v, want %v", seen, tt.want)
			}
		})
	}
}
