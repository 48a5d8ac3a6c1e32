// Package graphql serves the note API as a GraphQL schema. Mutations go
// through the same notes.Service as the REST handlers.
package graphql

import (
	_ "embed"
	"log/slog"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/dukerupert/notesync/internal/accounts"
	"github.com/dukerupert/notesync/internal/notes"
	"github.com/dukerupert/notesync/internal/store"
)

//go:embed schema.graphql
var schemaSDL string

// NewHandler parses the schema against a fresh resolver and returns the
// HTTP endpoint. The caller, if any, is expected in the request context.
func NewHandler(ns *notes.Service, as *accounts.Service, users store.UserStore, logger *slog.Logger) http.Handler {
	schema := graphql.MustParseSchema(schemaSDL, &Resolver{
		notes:    ns,
		accounts: as,
		users:    users,
		logger:   logger,
	})
	return &relay.Handler{Schema: schema}
}
