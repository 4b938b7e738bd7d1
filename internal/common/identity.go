package common

import "context"

// Identity is the verified principal attached to a request after the auth
// middleware has validated its bearer token. Handlers must obtain the caller
// identity only through IdentityFrom, never from client-supplied fields.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the verified identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the verified identity from ctx.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
