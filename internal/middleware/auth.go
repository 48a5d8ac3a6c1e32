package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/notesync/internal/auth"
	"github.com/dukerupert/notesync/internal/model"
)

type Authenticator interface {
	Authenticate(credential string) (model.Caller, error)
}

// RequireAuth validates the bearer token and stores the Caller in the
// request context. Requests without a valid token get a 401.
func RequireAuth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := authn.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"})
				return
			}

			ctx := auth.WithCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the Caller when a valid token is present and passes
// every request through. Resolvers decide what needs a caller.
func OptionalAuth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h := r.Header.Get("Authorization"); h != "" {
				if caller, err := authn.Authenticate(h); err == nil {
					r = r.WithContext(auth.WithCaller(r.Context(), caller))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
