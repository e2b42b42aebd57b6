package domain

// Page identifies one of the screens the web client can display. It is tracked
// independently of any native navigation history. Navigate accepts any value;
// rendering layers fall back to the not-found page for values they do not
// recognise.
type Page string

const (
	PageHome                Page = "home"
	PageLogin               Page = "login"
	PageSignup              Page = "signup"
	PageFindWork            Page = "find-work"
	PageFindFreelancers     Page = "find-freelancers"
	PageFreelancerDashboard Page = "freelancer-dashboard"
	PageClientDashboard     Page = "client-dashboard"
	PageFreelancerProfile   Page = "freelancer-profile"
	PageJobDetail           Page = "job-detail"
	PageMessages            Page = "messages"
	PageProjectDetail       Page = "project-detail"
	PageEarnings            Page = "earnings"
	PagePostJob             Page = "post-job"
	PageFeatures            Page = "features"
	PageAbout               Page = "about"
	PageContact             Page = "contact"
	PagePricing             Page = "pricing"
	PageTerms               Page = "terms"
	PagePrivacy             Page = "privacy"
	PageForgotPassword      Page = "forgot-password"
	PageResetPassword       Page = "reset-password"
	PageVerifyEmail         Page = "verify-email"
	PageAccountSettings     Page = "account-settings"
	PageAdminDashboard      Page = "admin-dashboard"
	PageProjectWorkspace    Page = "project-workspace"
	PageNotFound            Page = "404"
	PageAccessDenied        Page = "access-denied"
	PageSuccess             Page = "success"
	PageFailure             Page = "failure"
)

// protectedPages is the fixed list of pages that require an authenticated
// session. Unauthenticated access forces a redirect to home.
var protectedPages = map[Page]struct{}{
	PageFreelancerDashboard: {},
	PageClientDashboard:     {},
	PageAdminDashboard:      {},
	PageMessages:            {},
	PageEarnings:            {},
	PageProjectDetail:       {},
	PageProjectWorkspace:    {},
	PageAccountSettings:     {},
}

// Protected reports whether the page requires authentication.
func (p Page) Protected() bool {
	_, ok := protectedPages[p]
	return ok
}

var knownPages = map[Page]struct{}{
	PageHome: {}, PageLogin: {}, PageSignup: {}, PageFindWork: {},
	PageFindFreelancers: {}, PageFreelancerDashboard: {}, PageClientDashboard: {},
	PageFreelancerProfile: {}, PageJobDetail: {}, PageMessages: {},
	PageProjectDetail: {}, PageEarnings: {}, PagePostJob: {}, PageFeatures: {},
	PageAbout: {}, PageContact: {}, PagePricing: {}, PageTerms: {},
	PagePrivacy: {}, PageForgotPassword: {}, PageResetPassword: {},
	PageVerifyEmail: {}, PageAccountSettings: {}, PageAdminDashboard: {},
	PageProjectWorkspace: {}, PageNotFound: {}, PageAccessDenied: {},
	PageSuccess: {}, PageFailure: {},
}

// Known reports whether the page is a member of the closed page set.
// Rendering layers use this to fall back to the not-found view.
func (p Page) Known() bool {
	_, ok := knownPages[p]
	return ok
}
