package domain

import "errors"

var (
	// ErrSessionInvalid marks a token the backend refused to resolve into an
	// identity. The session store downgrades to logged-out when it sees this.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrNotAuthenticated is returned by operations that need a live session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidRole is returned when a registration role is outside the
	// closed CLIENT/FREELANCER set.
	ErrInvalidRole = errors.New("invalid registration role")
)
