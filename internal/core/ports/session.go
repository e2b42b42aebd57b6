package ports

import "github.com/sajilokaam/client-core/internal/core/domain"

// SessionSnapshot is a consistent read of the session at one instant.
// Authenticated and UserType are derived from the same user value, so an
// observer never sees an authenticated snapshot with a stale role set.
type SessionSnapshot struct {
	Authenticated bool
	Loading       bool
	User          *domain.User
	UserType      domain.UserType
}

// Session is the read surface the page router (and any other consumer)
// observes. Subscribers are invoked synchronously after every session
// mutation: login, logout, register, and profile fetch completion.
type Session interface {
	Snapshot() SessionSnapshot
	Subscribe(fn func(SessionSnapshot))
}
