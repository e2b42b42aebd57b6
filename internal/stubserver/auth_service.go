package stubserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sajilokaam/client-core/internal/core/domain"
)

// AuthService implements registration, login and profile maintenance for the
// stub, issuing the same HS256 bearer tokens the production backend does.
type AuthService struct {
	repo      UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates an account and returns a token for it. role defaults to
// CLIENT; only CLIENT and FREELANCER are self-assignable, matching the
// production authorization rule.
func (s *AuthService) Register(ctx context.Context, email, password, fullName, role string) (string, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" {
		role = domain.RoleClient
	}
	if role != domain.RoleClient && role != domain.RoleFreelancer {
		return "", ErrInvalidRole
	}
	assigned, _ := roleByName(role)

	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		Roles:        []domain.Role{assigned},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", err
	}
	return s.generateToken(created)
}

// Login verifies credentials and returns a fresh token. Unknown emails and
// wrong passwords collapse into the same error so the stub does not leak
// which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.generateToken(user)
}

// Profile resolves a user id (from a verified token) into the account.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies the account-settings changes. Empty fields are left
// unchanged; a new password is re-hashed.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, fullName, password string) (*User, error) {
	var hash string
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = string(h)
	}
	return s.repo.UpdateProfile(ctx, userID, fullName, hash)
}

func (s *AuthService) generateToken(user *User) (string, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Name)
	}

	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"roles": roles,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
