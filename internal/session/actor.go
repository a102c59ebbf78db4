// Package session carries the authenticated actor of a request. The
// actor is resolved once by the auth middleware and travels in the
// request context; no identity state outlives the request.
package session

import "context"

type Actor struct {
	UserID string
	Email  string
	Card   string
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}
