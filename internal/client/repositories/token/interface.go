package token

import "context"

// Repository persists the single opaque session token across process runs.
// The stored value is the durable shadow of the in-memory session token and
// must track it exactly.
//
// Load returns an empty string when no token is stored; absence is not an
// error. No expiry is tracked locally, an expired token is only discovered
// when the server rejects it.
type Repository interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
