package auth

import "context"

// Identity is the server-verified claim of who is making the request.
// It is attached to the request context by the request gate and never
// mutated afterwards.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

type contextKey struct{}

var identityKey contextKey

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the request identity, if any. The second
// return reports whether a verified session was attached.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
