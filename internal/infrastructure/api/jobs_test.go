package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sampleJobs() []Job {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return []Job{
		{ID: 1, Title: "Build a Go microservice", Description: "REST API work", Budget: 900, CreatedAt: base},
		{ID: 2, Title: "Logo design", Description: "brand refresh", Budget: 150, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 3, Title: "Data pipeline", Description: "ETL in Go", Budget: 1200, CreatedAt: base.Add(24 * time.Hour)},
	}
}

func TestSearchJobs(t *testing.T) {
	jobs := sampleJobs()

	got := SearchJobs(jobs, "go")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected matches: %+v", got)
	}

	// Case-insensitive, matches description too.
	if got := SearchJobs(jobs, "BRAND"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected description match, got %+v", got)
	}

	if got := SearchJobs(jobs, "  "); len(got) != len(jobs) {
		t.Fatalf("blank query must match everything, got %d", len(got))
	}

	if got := SearchJobs(jobs, "blockchain"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestSortJobs(t *testing.T) {
	jobs := sampleJobs()

	newest := SortJobs(jobs, SortNewest)
	if newest[0].ID != 2 || newest[1].ID != 3 || newest[2].ID != 1 {
		t.Fatalf("unexpected newest order: %+v", newest)
	}

	high := SortJobs(jobs, SortBudgetHigh)
	if high[0].ID != 3 || high[2].ID != 2 {
		t.Fatalf("unexpected budget-high order: %+v", high)
	}

	low := SortJobs(jobs, SortBudgetLow)
	if low[0].ID != 2 || low[2].ID != 3 {
		t.Fatalf("unexpected budget-low order: %+v", low)
	}

	// Unknown order falls back to newest; input is never mutated.
	fallback := SortJobs(jobs, "by-vibes")
	if fallback[0].ID != 2 {
		t.Fatalf("unexpected fallback order: %+v", fallback)
	}
	if jobs[0].ID != 1 {
		t.Fatalf("input slice mutated: %+v", jobs)
	}
}

func TestJobsAPI_List_Filter(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":1,"title":"x","status":"OPEN","clientId":9}]`))
	}))
	defer srv.Close()

	jobs := NewJobsAPI(NewClient(srv.URL))
	got, err := jobs.List(context.Background(), JobFilter{ClientID: 9, Status: "OPEN"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].ClientID != 9 {
		t.Fatalf("unexpected jobs: %+v", got)
	}
	if query != "clientId=9&status=OPEN" {
		t.Fatalf("unexpected query: %q", query)
	}
}

func TestJobsAPI_Get_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"job not found"}`))
	}))
	defer srv.Close()

	jobs := NewJobsAPI(NewClient(srv.URL))
	if _, err := jobs.Get(context.Background(), 99); !IsNotFound(err) {
		t.Fatalf("expected 404, got %v", err)
	}
}
