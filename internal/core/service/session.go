package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sajilokaam/client-core/internal/core/domain"
	"github.com/sajilokaam/client-core/internal/core/ports"
	"github.com/sajilokaam/client-core/internal/metrics"
)

const defaultProfileTimeout = 10 * time.Second

// SessionStore owns the bearer token and the resolved identity. It is created
// once at process start and lives for the application's lifetime. All state
// transitions notify subscribers synchronously, which is how the page router
// observes login/logout without polling.
//
// Invariant: authenticated ⇔ token present ∧ user resolved. A token whose
// profile fetch is pending or failed never counts as authenticated.
type SessionStore struct {
	api      ports.AuthAPI
	tokens   ports.TokenStore
	notifier ports.Notifier
	validate *validator.Validate
	log      zerolog.Logger

	profileTimeout time.Duration

	mu      sync.RWMutex
	token   string
	user    *domain.User
	loading bool
	subs    []func(ports.SessionSnapshot)
}

// Option tweaks SessionStore construction.
type Option func(*SessionStore)

// WithProfileTimeout bounds every profile fetch. A fetch that exceeds the
// bound is treated like any other rejection: the session downgrades to
// logged-out instead of hanging in the loading state.
func WithProfileTimeout(d time.Duration) Option {
	return func(s *SessionStore) {
		if d > 0 {
			s.profileTimeout = d
		}
	}
}

// NewSessionStore wires the store. The session starts in the loading state
// until Initialize completes; consumers must not branch on IsAuthenticated
// before that.
func NewSessionStore(api ports.AuthAPI, tokens ports.TokenStore, notifier ports.Notifier, log zerolog.Logger, opts ...Option) *SessionStore {
	s := &SessionStore{
		api:            api,
		tokens:         tokens,
		notifier:       notifier,
		validate:       validator.New(),
		log:            log,
		profileTimeout: defaultProfileTimeout,
		loading:        true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize restores the persisted session. Run exactly once at startup.
// When no token is stored it returns without any network call. A stored token
// that the backend rejects is silently discarded; the process starts logged
// out and Initialize still returns nil.
func (s *SessionStore) Initialize(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("token storage unreadable, starting logged out")
		s.settle()
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		s.settle()
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.fetchProfile(ctx, token); err != nil {
		s.log.Info().Msg("stored session rejected, starting logged out")
	}
	return nil
}

// fetchProfile resolves token (or the stored one when empty) into an identity.
// On any failure the token is treated as invalid: cleared from storage and
// from memory. The loading flag is cleared on every path, including errors.
func (s *SessionStore) fetchProfile(ctx context.Context, tokenOverride string) error {
	defer s.settle()

	token := tokenOverride
	if token == "" {
		s.mu.RLock()
		token = s.token
		s.mu.RUnlock()
	}
	if token == "" {
		return domain.ErrNotAuthenticated
	}

	fctx, cancel := context.WithTimeout(ctx, s.profileTimeout)
	defer cancel()

	user, err := s.api.GetMe(fctx, token)
	if err != nil {
		if cerr := s.tokens.Clear(context.WithoutCancel(ctx)); cerr != nil {
			s.log.Warn().Err(cerr).Msg("failed to clear stored token")
		}
		s.mu.Lock()
		s.token = ""
		s.user = nil
		s.mu.Unlock()

		metrics.SessionOperationsTotal.WithLabelValues("profile_fetch", "invalid").Inc()
		return fmt.Errorf("%w: %v", domain.ErrSessionInvalid, err)
	}

	if user.Roles == nil {
		user.Roles = []domain.Role{}
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	metrics.SessionOperationsTotal.WithLabelValues("profile_fetch", "ok").Inc()
	return nil
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Login authenticates and resolves the profile before returning, so callers
// can rely on User being populated immediately after a nil return. On failure
// nothing is mutated and the error propagates so that forms can map specific
// statuses to field-level messages.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	if err := s.validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		s.notifier.Error("Login failed. Please check your credentials.")
		return fmt.Errorf("validate credentials: %w", err)
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("login", "rejected").Inc()
		s.notifier.Error(loginErrorMessage(err))
		return err
	}

	if err := s.adoptToken(ctx, token); err != nil {
		s.notifier.Error("Login failed. Could not load your profile.")
		return err
	}

	metrics.SessionOperationsTotal.WithLabelValues("login", "ok").Inc()
	s.notifier.Success("Login successful!")
	return nil
}

type registerInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	FullName string `validate:"required"`
	Role     string `validate:"omitempty,oneof=CLIENT FREELANCER"`
}

// Register creates an account and logs it in, following the same contract
// shape as Login. role is CLIENT, FREELANCER, or empty for the backend
// default; the backend authorises role assignment.
func (s *SessionStore) Register(ctx context.Context, email, password, fullName, role string) error {
	in := registerInput{Email: email, Password: password, FullName: fullName, Role: role}
	if err := s.validate.Struct(in); err != nil {
		s.notifier.Error("Invalid registration data. Please check your information.")
		return fmt.Errorf("validate registration: %w", err)
	}

	token, err := s.api.Register(ctx, email, password, fullName, role)
	if err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("register", "rejected").Inc()
		s.notifier.Error(registerErrorMessage(err))
		return err
	}

	if err := s.adoptToken(ctx, token); err != nil {
		s.notifier.Error("Registration failed. Could not load your profile.")
		return err
	}

	metrics.SessionOperationsTotal.WithLabelValues("register", "ok").Inc()
	s.notifier.Success("Registration successful!")
	return nil
}

// adoptToken persists a freshly issued token and resolves its profile. The
// profile fetch is sequenced strictly after token acquisition, never raced.
func (s *SessionStore) adoptToken(ctx context.Context, token string) error {
	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return s.fetchProfile(ctx, token)
}

// Logout clears the persisted and in-memory session synchronously. It never
// fails and is idempotent.
func (s *SessionStore) Logout() {
	if err := s.tokens.Clear(context.Background()); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stored token on logout")
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	metrics.SessionOperationsTotal.WithLabelValues("logout", "ok").Inc()
	s.notifier.Success("Logged out successfully")
	s.emit()
}

// RefreshUser re-syncs the identity from the backend using the current token.
// A no-op when logged out. Used after profile-mutating calls elsewhere in the
// application.
func (s *SessionStore) RefreshUser(ctx context.Context) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return nil
	}
	return s.fetchProfile(ctx, "")
}

// HasRole is a case-insensitive membership test against the current role set.
// Returns false, never panics, when logged out.
func (s *SessionStore) HasRole(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.HasRole(name)
}

// IsAuthenticated reports whether both a token and a resolved identity are
// present.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// IsLoading reports whether the initial token validation is still in flight.
func (s *SessionStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Token returns the current bearer token, empty when logged out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns an independent copy of the current identity, nil when logged
// out.
func (s *SessionStore) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Snapshot implements ports.Session.
func (s *SessionStore) Snapshot() ports.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe implements ports.Session. Subscriptions last for the process
// lifetime; there is no unsubscribe.
func (s *SessionStore) Subscribe(fn func(ports.SessionSnapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *SessionStore) snapshotLocked() ports.SessionSnapshot {
	u := s.user.Clone()
	return ports.SessionSnapshot{
		Authenticated: s.token != "" && s.user != nil,
		Loading:       s.loading,
		User:          u,
		UserType:      u.Type(),
	}
}

// settle clears the loading flag and notifies subscribers with the current
// state. Runs on every fetchProfile outcome, success or error.
func (s *SessionStore) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.emit()
}

func (s *SessionStore) emit() {
	s.mu.RLock()
	snap := s.snapshotLocked()
	subs := make([]func(ports.SessionSnapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// statusCoder is implemented by transport errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

func statusOf(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

func loginErrorMessage(err error) string {
	if statusOf(err) == 401 {
		return "Login failed. Please check your credentials."
	}
	return "Login failed. Please try again."
}

func registerErrorMessage(err error) string {
	switch statusOf(err) {
	case 409:
		return "This email is already registered. Please use a different email or try logging in."
	case 400:
		return "Invalid registration data. Please check your information."
	default:
		return "Registration failed. Please try again."
	}
}
