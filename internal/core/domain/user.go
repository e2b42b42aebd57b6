package domain

import "strings"

// Canonical role names as issued by the backend. A user may hold several.
const (
	RoleAdmin      = "ADMIN"
	RoleClient     = "CLIENT"
	RoleFreelancer = "FREELANCER"
)

// Role is a named capability group attached to a user.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the resolved identity of an authenticated session. It is a value
// object owned by the session store: replaced wholesale on every profile
// refresh, never mutated in place. Roles is always non-nil, possibly empty.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Roles    []Role `json:"roles"`
}

// HasRole reports whether the user holds the named role. The comparison is
// case-insensitive. Safe to call on a nil receiver.
func (u *User) HasRole(name string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy so that consumers can never mutate the
// session's identity through a shared slice.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Roles = make([]Role, len(u.Roles))
	copy(c.Roles, u.Roles)
	return &c
}

// UserType is the routing-only simplification of the role set: at most one of
// freelancer/client, or none when logged out (or no recognised role).
type UserType string

const (
	UserTypeNone       UserType = ""
	UserTypeFreelancer UserType = "freelancer"
	UserTypeClient     UserType = "client"
)

// Type derives the navigation bucket from the role set. FREELANCER takes
// precedence; ADMIN folds into the client bucket and shares the client
// dashboard for redirect purposes.
func (u *User) Type() UserType {
	switch {
	case u == nil:
		return UserTypeNone
	case u.HasRole(RoleFreelancer):
		return UserTypeFreelancer
	case u.HasRole(RoleClient) || u.HasRole(RoleAdmin):
		return UserTypeClient
	default:
		return UserTypeNone
	}
}
