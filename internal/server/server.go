package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/notesync/internal/accounts"
	"github.com/dukerupert/notesync/internal/auth"
	"github.com/dukerupert/notesync/internal/graphql"
	"github.com/dukerupert/notesync/internal/handler"
	"github.com/dukerupert/notesync/internal/middleware"
	"github.com/dukerupert/notesync/internal/notes"
	"github.com/dukerupert/notesync/internal/store"
	ws "github.com/dukerupert/notesync/internal/websocket"
)

type Options struct {
	BcryptCost int
}

type Server struct {
	store    store.Store
	hub      *ws.Hub
	authn    *auth.Authenticator
	notes    *notes.Service
	accounts *accounts.Service
	authH    *handler.AuthHandler
	noteH    *handler.NoteHandler
	graphqlH http.Handler
	logger   *slog.Logger
}

func New(st store.Store, authn *auth.Authenticator, opts Options, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	noteSvc := notes.NewService(st, hub, logger.With("component", "notes"))
	accountSvc := accounts.NewService(st.Users(), authn, opts.BcryptCost, logger.With("component", "accounts"))

	return &Server{
		store:    st,
		hub:      hub,
		authn:    authn,
		notes:    noteSvc,
		accounts: accountSvc,
		authH:    handler.NewAuthHandler(accountSvc, logger.With("component", "auth")),
		noteH:    handler.NewNoteHandler(noteSvc, logger.With("component", "note")),
		graphqlH: graphql.NewHandler(noteSvc, accountSvc, st.Users(), logger.With("component", "graphql")),
		logger:   logger,
	}
}

// Hub returns the realtime hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/register", s.authH.Register)
	outerMux.HandleFunc("POST /api/login", s.authH.Login)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// The websocket and GraphQL endpoints authenticate on their own terms.
	outerMux.Handle("GET /ws", ws.HandleWebSocket(s.hub, s.authn, s.logger.With("component", "websocket")))
	outerMux.Handle("POST /graphql", middleware.OptionalAuth(s.authn)(s.graphqlH))

	// Protected routes, wrapped with RequireAuth
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.authn)
	outerMux.Handle("/api/", authMiddleware(protectedMux))

	// Apply request logging middleware
	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "ok", "sessions": s.hub.ClientCount()})
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/me", s.authH.Me)

	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("GET /api/notes", s.noteH.List)
	mux.HandleFunc("GET /api/notes/{id}", s.noteH.Get)
	mux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)
}
