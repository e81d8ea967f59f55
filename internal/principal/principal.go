// Package principal carries the authenticated caller through a request
// context.
package principal

import "context"

type Principal struct {
	UserID string
	Email  string
}

type ctxKey struct{}

func With(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func From(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok && p.UserID != ""
}

// UserID returns the caller id or "" for anonymous requests.
func UserID(ctx context.Context) string {
	p, _ := From(ctx)
	return p.UserID
}
