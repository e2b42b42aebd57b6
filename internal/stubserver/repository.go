// Package stubserver is the development stand-in for the SajiloKaam backend.
// It implements the REST surface the client core consumes — auth, profile and
// a minimal jobs board — so that tests and frontend work never depend on the
// production deployment. It is a test double, not a specification of the real
// backend.
package stubserver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sajilokaam/client-core/internal/core/domain"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrJobNotFound        = errors.New("job not found")
)

// User is a stub account. Roles use the same canonical names the production
// backend issues.
type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
	Roles        []domain.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository abstracts account storage so the stub can run fully
// in-memory (default) or against Mongo for longer-lived dev environments.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	// UpdateProfile replaces fullName and/or passwordHash; empty strings mean
	// "leave unchanged".
	UpdateProfile(ctx context.Context, id int64, fullName, passwordHash string) (*User, error)
}

// Fixed role catalogue, mirroring the production seed data.
var roleCatalogue = map[string]domain.Role{
	domain.RoleAdmin:      {ID: 1, Name: domain.RoleAdmin},
	domain.RoleClient:     {ID: 2, Name: domain.RoleClient},
	domain.RoleFreelancer: {ID: 3, Name: domain.RoleFreelancer},
}

func roleByName(name string) (domain.Role, bool) {
	r, ok := roleCatalogue[strings.ToUpper(name)]
	return r, ok
}

// MemoryUserRepository keeps accounts in process memory.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[int64]*User
	byEmail map[string]int64
	nextID  int64
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[int64]*User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

func cloneStubUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Roles = make([]domain.Role, len(u.Roles))
	copy(c.Roles, u.Roles)
	return &c
}

func (r *MemoryUserRepository) Create(_ context.Context, user *User) (*User, error) {
	key := strings.ToLower(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[key]; exists {
		return nil, ErrUserExists
	}

	stored := cloneStubUser(user)
	stored.ID = r.nextID
	r.nextID++

	r.byID[stored.ID] = stored
	r.byEmail[key] = stored.ID
	return cloneStubUser(stored), nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneStubUser(r.byID[id]), nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneStubUser(u), nil
}

func (r *MemoryUserRepository) UpdateProfile(_ context.Context, id int64, fullName, passwordHash string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if fullName != "" {
		u.FullName = fullName
	}
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneStubUser(u), nil
}
