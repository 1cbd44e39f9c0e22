package app

import "context"

// Identity is the authenticated caller decoded from a bearer token. A request
// without a valid token simply carries no identity; each operation decides
// whether that is acceptable.
type Identity struct {
	UserID uint
	Email  string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(Identity)
	return ident, ok
}
