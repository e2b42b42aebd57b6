package domain

import "testing"

func TestPage_Protected(t *testing.T) {
	protected := []Page{
		PageFreelancerDashboard, PageClientDashboard, PageAdminDashboard,
		PageMessages, PageEarnings, PageProjectDetail, PageProjectWorkspace,
		PageAccountSettings,
	}
	for _, p := range protected {
		if !p.Protected() {
			t.Fatalf("expected %s to be protected", p)
		}
	}

	public := []Page{PageHome, PageLogin, PageSignup, PageFindWork, PageJobDetail, PageAbout}
	for _, p := range public {
		if p.Protected() {
			t.Fatalf("expected %s to be public", p)
		}
	}
}

func TestPage_Known(t *testing.T) {
	if !PageHome.Known() || !PageNotFound.Known() {
		t.Fatalf("expected core pages to be known")
	}
	if Page("dashboard-v2").Known() {
		t.Fatalf("unexpected page must not be known")
	}
}
