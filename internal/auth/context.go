package auth

import (
	"context"

	"github.com/dukerupert/notesync/internal/model"
)

type contextKey struct{}

func WithCaller(ctx context.Context, c model.Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

func FromContext(ctx context.Context) (model.Caller, bool) {
	c, ok := ctx.Value(contextKey{}).(model.Caller)
	return c, ok
}

// CallerFrom returns the authenticated caller or ErrNotAuthenticated.
func CallerFrom(ctx context.Context) (model.Caller, error) {
	c, ok := FromContext(ctx)
	if !ok || c.ID == "" {
		return model.Caller{}, model.ErrNotAuthenticated
	}
	return c, nil
}
