package ports

import (
	"context"

	"github.com/sajilokaam/client-core/internal/core/domain"
)

// ProfileChanges carries the mutable fields of the account-settings form.
// Nil fields are left untouched by the backend.
type ProfileChanges struct {
	FullName *string `json:"fullName,omitempty"`
	Password *string `json:"password,omitempty"`
}

// AuthAPI is the backend surface the session store consumes. Implementations
// translate transport failures into errors; the store only distinguishes
// "succeeded" from "failed", callers may inspect the HTTP status underneath.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (token string, err error)

	// Register creates an account and returns a bearer token for it. role is
	// CLIENT, FREELANCER, or empty for the backend default.
	Register(ctx context.Context, email, password, fullName, role string) (token string, err error)

	// GetMe resolves a bearer token into the minimal identity shape. Any
	// failure means the token must be treated as invalid.
	GetMe(ctx context.Context, token string) (*domain.User, error)

	// UpdateProfile applies account-settings changes and returns the fresh
	// identity.
	UpdateProfile(ctx context.Context, token string, changes ProfileChanges) (*domain.User, error)
}
