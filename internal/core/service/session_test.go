package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sajilokaam/client-core/internal/core/domain"
	"github.com/sajilokaam/client-core/internal/core/ports"
)

// stubAuthAPI scripts the backend surface and records call order.
type stubAuthAPI struct {
	loginToken    string
	loginErr      error
	registerToken string
	registerErr   error
	me            *domain.User
	meErr         error

	calls []string
}

func (s *stubAuthAPI) Login(_ context.Context, _, _ string) (string, error) {
	s.calls = append(s.calls, "login")
	return s.loginToken, s.loginErr
}

func (s *stubAuthAPI) Register(_ context.Context, _, _, _, _ string) (string, error) {
	s.calls = append(s.calls, "register")
	return s.registerToken, s.registerErr
}

func (s *stubAuthAPI) GetMe(_ context.Context, _ string) (*domain.User, error) {
	s.calls = append(s.calls, "getme")
	if s.meErr != nil {
		return nil, s.meErr
	}
	return s.me.Clone(), nil
}

func (s *stubAuthAPI) UpdateProfile(_ context.Context, _ string, _ ports.ProfileChanges) (*domain.User, error) {
	s.calls = append(s.calls, "updateprofile")
	return s.me.Clone(), nil
}

// memTokenStore keeps the token in memory and records call order alongside
// the API stub when they share a journal.
type memTokenStore struct {
	token   string
	loadErr error
	journal *[]string
}

func (m *memTokenStore) Load(_ context.Context) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.token, nil
}

func (m *memTokenStore) Save(_ context.Context, token string) error {
	if m.journal != nil {
		*m.journal = append(*m.journal, "save")
	}
	m.token = token
	return nil
}

func (m *memTokenStore) Clear(_ context.Context) error {
	m.token = ""
	return nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

// statusErr mimics a transport error carrying an HTTP status.
type statusErr struct{ code int }

func (e *statusErr) Error() string   { return "request failed" }
func (e *statusErr) StatusCode() int { return e.code }

func freelancerUser() *domain.User {
	return &domain.User{
		ID:       7,
		Email:    "mina@example.com",
		FullName: "Mina Shrestha",
		Roles:    []domain.Role{{ID: 3, Name: domain.RoleFreelancer}},
	}
}

func newTestStore(api *stubAuthAPI, tokens *memTokenStore, notifier *recordingNotifier) *SessionStore {
	return NewSessionStore(api, tokens, notifier, zerolog.Nop())
}

func TestSessionStore_Initialize_NoToken(t *testing.T) {
	api := &stubAuthAPI{}
	store := newTestStore(api, &memTokenStore{}, &recordingNotifier{})

	if !store.IsLoading() {
		t.Fatalf("expected loading before Initialize")
	}
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if store.IsLoading() {
		t.Fatalf("expected loading cleared after Initialize")
	}
	if store.IsAuthenticated() {
		t.Fatalf("expected logged out")
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected no network calls without a stored token, got %v", api.calls)
	}
}

func TestSessionStore_Initialize_ValidToken(t *testing.T) {
	api := &stubAuthAPI{me: freelancerUser()}
	store := newTestStore(api, &memTokenStore{token: "tok-1"}, &recordingNotifier{})

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if store.Token() != "tok-1" {
		t.Fatalf("unexpected token: %q", store.Token())
	}
	if got := store.User(); got == nil || got.Email != "mina@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestSessionStore_Initialize_RejectedToken(t *testing.T) {
	api := &stubAuthAPI{meErr: &statusErr{code: 401}}
	tokens := &memTokenStore{token: "stale"}
	store := newTestStore(api, tokens, &recordingNotifier{})

	// A rejected stored token is not a startup failure.
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatalf("expected logged out after rejection")
	}
	if store.IsLoading() {
		t.Fatalf("expected loading cleared even on the error path")
	}
	if tokens.token != "" {
		t.Fatalf("expected stored token cleared, still have %q", tokens.token)
	}
	if store.Token() != "" {
		t.Fatalf("expected in-memory token cleared, still have %q", store.Token())
	}
}

func TestSessionStore_Login_OrdersTokenBeforeProfile(t *testing.T) {
	journal := []string{}
	api := &stubAuthAPI{loginToken: "tok-2", me: freelancerUser()}
	tokens := &memTokenStore{journal: &journal}
	notifier := &recordingNotifier{}
	store := newTestStore(api, tokens, notifier)
	_ = store.Initialize(context.Background())

	if err := store.Login(context.Background(), "mina@example.com", "hunter22"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	// Token persistence must be sequenced strictly before the profile fetch.
	sawSave := false
	for _, call := range journal {
		if call == "save" {
			sawSave = true
		}
	}
	if !sawSave {
		t.Fatalf("expected token saved during login")
	}
	if api.calls[len(api.calls)-1] != "getme" {
		t.Fatalf("expected profile fetch after token acquisition, calls: %v", api.calls)
	}

	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated after login")
	}
	if store.User() == nil {
		t.Fatalf("expected user populated immediately after Login returns")
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Login successful!" {
		t.Fatalf("unexpected success notifications: %v", notifier.successes)
	}
}

func TestSessionStore_Login_FailureLeavesStateUntouched(t *testing.T) {
	api := &stubAuthAPI{loginErr: &statusErr{code: 401}}
	tokens := &memTokenStore{}
	notifier := &recordingNotifier{}
	store := newTestStore(api, tokens, notifier)
	_ = store.Initialize(context.Background())

	if err := store.Login(context.Background(), "mina@example.com", "wrong"); err == nil {
		t.Fatalf("expected error from rejected login")
	}
	if store.IsAuthenticated() || store.Token() != "" || store.User() != nil {
		t.Fatalf("expected no mutation on failed login")
	}
	if tokens.token != "" {
		t.Fatalf("expected nothing persisted on failed login")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Login failed. Please check your credentials." {
		t.Fatalf("unexpected error notifications: %v", notifier.errors)
	}
}

func TestSessionStore_Login_InvalidEmailSkipsNetwork(t *testing.T) {
	api := &stubAuthAPI{}
	store := newTestStore(api, &memTokenStore{}, &recordingNotifier{})
	_ = store.Initialize(context.Background())

	if err := store.Login(context.Background(), "not-an-email", "hunter22"); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected no network call for invalid input, got %v", api.calls)
	}
}

func TestSessionStore_AuthenticatedInvariantObservedBySubscribers(t *testing.T) {
	api := &stubAuthAPI{loginToken: "tok-3", me: freelancerUser()}
	store := newTestStore(api, &memTokenStore{}, &recordingNotifier{})
	_ = store.Initialize(context.Background())

	store.Subscribe(func(snap ports.SessionSnapshot) {
		if snap.Authenticated && snap.User == nil {
			t.Fatalf("observed authenticated snapshot without a user")
		}
		if !snap.Authenticated && snap.User != nil {
			t.Fatalf("observed user on an unauthenticated snapshot")
		}
	})

	if err := store.Login(context.Background(), "mina@example.com", "hunter22"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	store.Logout()
}

func TestSessionStore_Logout_Idempotent(t *testing.T) {
	api := &stubAuthAPI{loginToken: "tok-4", me: freelancerUser()}
	tokens := &memTokenStore{}
	notifier := &recordingNotifier{}
	store := newTestStore(api, tokens, notifier)
	_ = store.Initialize(context.Background())
	_ = store.Login(context.Background(), "mina@example.com", "hunter22")

	store.Logout()
	store.Logout()

	if store.IsAuthenticated() || store.Token() != "" || store.User() != nil {
		t.Fatalf("expected fully cleared session")
	}
	if tokens.token != "" {
		t.Fatalf("expected persisted token cleared")
	}
	if len(notifier.successes) != 3 { // login + two logouts
		t.Fatalf("expected a notification per logout, got %v", notifier.successes)
	}
}

func TestSessionStore_RefreshUser_NoopWhenLoggedOut(t *testing.T) {
	api := &stubAuthAPI{}
	store := newTestStore(api, &memTokenStore{}, &recordingNotifier{})
	_ = store.Initialize(context.Background())

	if err := store.RefreshUser(context.Background()); err != nil {
		t.Fatalf("RefreshUser returned error: %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected no network call when logged out, got %v", api.calls)
	}
}

func TestSessionStore_RefreshUser_PicksUpProfileChanges(t *testing.T) {
	api := &stubAuthAPI{loginToken: "tok-5", me: freelancerUser()}
	store := newTestStore(api, &memTokenStore{}, &recordingNotifier{})
	_ = store.Initialize(context.Background())
	_ = store.Login(context.Background(), "mina@example.com", "hunter22")

	api.me.FullName = "Mina S."
	if err := store.RefreshUser(context.Background()); err != nil {
		t.Fatalf("RefreshUser returned error: %v", err)
	}
	if got := store.User().FullName; got != "Mina S." {
		t.Fatalf("expected refreshed name, got %q", got)
	}
}

func TestSessionStore_HasRole(t *testing.T) {
	api := &stubAuthAPI{loginToken: "tok-6", me: freelancerUser()}
	store := newTestStore(api, &memTokenStore{}, &recordingNotifier{})
	_ = store.Initialize(context.Background())

	if store.HasRole(domain.RoleFreelancer) {
		t.Fatalf("expected no roles while logged out")
	}

	_ = store.Login(context.Background(), "mina@example.com", "hunter22")

	if !store.HasRole("FREELANCER") || !store.HasRole("freelancer") {
		t.Fatalf("expected case-insensitive role match")
	}
	if store.HasRole(domain.RoleAdmin) {
		t.Fatalf("did not expect admin role")
	}
}

func TestSessionStore_Register_DuplicateEmailMessage(t *testing.T) {
	api := &stubAuthAPI{registerErr: &statusErr{code: 409}}
	notifier := &recordingNotifier{}
	store := newTestStore(api, &memTokenStore{}, notifier)
	_ = store.Initialize(context.Background())

	err := store.Register(context.Background(), "mina@example.com", "hunter22!", "Mina", "FREELANCER")
	if err == nil {
		t.Fatalf("expected error for duplicate registration")
	}
	want := "This email is already registered. Please use a different email or try logging in."
	if len(notifier.errors) != 1 || notifier.errors[0] != want {
		t.Fatalf("unexpected notifications: %v", notifier.errors)
	}
	if store.IsAuthenticated() {
		t.Fatalf("expected no session after failed registration")
	}
}

func TestSessionStore_Register_Success(t *testing.T) {
	api := &stubAuthAPI{registerToken: "tok-7", me: freelancerUser()}
	notifier := &recordingNotifier{}
	store := newTestStore(api, &memTokenStore{}, notifier)
	_ = store.Initialize(context.Background())

	if err := store.Register(context.Background(), "mina@example.com", "hunter22!", "Mina Shrestha", "FREELANCER"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated after registration")
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Registration successful!" {
		t.Fatalf("unexpected notifications: %v", notifier.successes)
	}
}

func TestSessionStore_InitializeStorageError(t *testing.T) {
	store := newTestStore(&stubAuthAPI{}, &memTokenStore{loadErr: errors.New("disk gone")}, &recordingNotifier{})

	if err := store.Initialize(context.Background()); err == nil {
		t.Fatalf("expected storage error surfaced")
	}
	if store.IsLoading() {
		t.Fatalf("expected loading cleared on storage failure")
	}
	if store.IsAuthenticated() {
		t.Fatalf("expected logged out on storage failure")
	}
}
