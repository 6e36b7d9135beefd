package auth

import "context"

type contextKey struct{}

// Actor identifies the caller of a core operation. Every mutating entry point
// takes an Actor explicitly; nothing in the core reads it from ambient state.
type Actor struct {
	UserID      string
	HouseholdID string
	Role        string
	SessionID   int64
}

// Valid reports whether the actor carries a resolvable user and household.
func (a Actor) Valid() bool {
	return a.UserID != "" && a.HouseholdID != ""
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(contextKey{}).(Actor)
	return a, ok
}

func IsOwner(ctx context.Context) bool {
	a, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return a.Role == "owner"
}
