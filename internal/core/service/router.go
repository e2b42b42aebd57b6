package service

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/sajilokaam/client-core/internal/core/domain"
	"github.com/sajilokaam/client-core/internal/core/ports"
	"github.com/sajilokaam/client-core/internal/metrics"
)

// Params is the arbitrary key/value context of the current page (for example
// {"projectId": 42}). It is replaced wholesale on every navigation.
type Params map[string]any

// PageRouter tracks which logical page is displayed and applies the two
// redirect rules derived from session state:
//
//	rule A: an authenticated user sitting on login/signup is sent to the
//	        dashboard matching their user type.
//	rule B: an unauthenticated user sitting on a protected page is sent home.
//
// The router subscribes to the session store and runs both rules synchronously
// in the change handler. None of its operations can fail; all fallibility
// lives in the session store it observes.
type PageRouter struct {
	session ports.Session
	log     zerolog.Logger

	mu     sync.Mutex
	page   domain.Page
	params Params
}

// NewPageRouter starts at the home page, subscribes to session changes, and
// immediately evaluates the redirect rules against the current session state.
func NewPageRouter(session ports.Session, log zerolog.Logger) *PageRouter {
	r := &PageRouter{
		session: session,
		log:     log,
		page:    domain.PageHome,
	}
	session.Subscribe(r.onSessionChange)
	r.onSessionChange(session.Snapshot())
	return r
}

// Navigate unconditionally sets the current page and replaces its params.
// Any page can transition to any other; reachability is not validated here.
// Concurrent calls are last-write-wins, which is acceptable for a single
// user's single focus of interaction.
func (r *PageRouter) Navigate(page domain.Page, params Params) {
	r.mu.Lock()
	r.page = page
	r.params = params
	r.mu.Unlock()

	r.log.Debug().Str("page", string(page)).Msg("navigate")
}

// CurrentPage returns the page being displayed.
func (r *PageRouter) CurrentPage() domain.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// Params returns the context of the current page, nil when none was given.
func (r *PageRouter) Params() Params {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.params == nil {
		return nil
	}
	out := make(Params, len(r.params))
	for k, v := range r.params {
		out[k] = v
	}
	return out
}

// UserType returns the routing bucket derived from the live session.
func (r *PageRouter) UserType() domain.UserType {
	return r.session.Snapshot().UserType
}

func (r *PageRouter) onSessionChange(snap ports.SessionSnapshot) {
	// The authentication flag is not final while the initial token validation
	// is in flight; rules are re-evaluated when it settles.
	if snap.Loading {
		return
	}

	r.mu.Lock()
	next, rule := ApplyRedirectRules(r.page, snap)
	forced := rule != ""
	if forced {
		r.page = next
		r.params = nil
	}
	r.mu.Unlock()

	if forced {
		metrics.RouterRedirectsTotal.WithLabelValues(rule).Inc()
		r.log.Info().
			Str("page", string(next)).
			Str("rule", rule).
			Msg("forced navigation")
	}
}

// Redirect rule identifiers, exposed for metrics and logs.
const (
	RulePostLogin   = "post_login"
	RuleLogoutGuard = "logout_guard"
)

// ApplyRedirectRules is the pure transition function behind the router's
// session-change handler: given the page on display and a session snapshot,
// it returns the page that should be displayed and the rule that fired, or
// (current, "") when no rule applies.
func ApplyRedirectRules(current domain.Page, snap ports.SessionSnapshot) (domain.Page, string) {
	if snap.Authenticated && (current == domain.PageLogin || current == domain.PageSignup) {
		switch snap.UserType {
		case domain.UserTypeFreelancer:
			return domain.PageFreelancerDashboard, RulePostLogin
		case domain.UserTypeClient:
			return domain.PageClientDashboard, RulePostLogin
		}
		// No recognised role: stay put rather than guess a dashboard.
		return current, ""
	}

	if !snap.Authenticated && current.Protected() {
		return domain.PageHome, RuleLogoutGuard
	}

	return current, ""
}
