package ports

import "context"

// TokenStore persists the bearer token under a single well-known key. The
// token is the only durable state the client owns: absence means logged-out.
// Load returns ("", nil) when no token is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
