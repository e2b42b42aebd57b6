package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Job mirrors the backend job listing shape.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget,omitempty"`
	BudgetType  string    `json:"budgetType,omitempty"` // FIXED or HOURLY
	Deadline    string    `json:"deadline,omitempty"`
	Status      string    `json:"status"`
	ClientID    int64     `json:"clientId"`
	CategoryID  int64     `json:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobFilter narrows a listing; zero values mean "any".
type JobFilter struct {
	ClientID   int64
	Status     string
	CategoryID int64
	Featured   bool
}

// JobDraft is the payload for posting a new job.
type JobDraft struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget,omitempty"`
	BudgetType  string  `json:"budgetType,omitempty"`
	Deadline    string  `json:"deadline,omitempty"`
	CategoryID  int64   `json:"categoryId,omitempty"`
	SkillIDs    []int64 `json:"skillIds,omitempty"`
}

// JobUpdate carries partial edits; nil fields are left untouched.
type JobUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	BudgetType  *string  `json:"budgetType,omitempty"`
	Deadline    *string  `json:"deadline,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

// JobsAPI talks to the /jobs endpoints.
type JobsAPI struct {
	c *Client
}

func NewJobsAPI(c *Client) *JobsAPI {
	return &JobsAPI{c: c}
}

func (j *JobsAPI) List(ctx context.Context, f JobFilter) ([]Job, error) {
	q := url.Values{}
	if f.ClientID != 0 {
		q.Set("clientId", strconv.FormatInt(f.ClientID, 10))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.CategoryID != 0 {
		q.Set("categoryId", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Featured {
		q.Set("featured", "true")
	}

	var out []Job
	err := j.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "jobs_list",
		path:     "/jobs",
		query:    q,
		out:      &out,
	})
	return out, err
}

func (j *JobsAPI) Get(ctx context.Context, id int64) (*Job, error) {
	var out Job
	err := j.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "jobs_get",
		path:     fmt.Sprintf("/jobs/%d", id),
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (j *JobsAPI) Create(ctx context.Context, draft JobDraft) (*Job, error) {
	var out Job
	err := j.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "jobs_create",
		path:     "/jobs",
		body:     draft,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (j *JobsAPI) Update(ctx context.Context, id int64, update JobUpdate) (*Job, error) {
	var out Job
	err := j.c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "jobs_update",
		path:     fmt.Sprintf("/jobs/%d", id),
		body:     update,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (j *JobsAPI) Delete(ctx context.Context, id int64) error {
	return j.c.do(ctx, call{
		method:   http.MethodDelete,
		endpoint: "jobs_delete",
		path:     fmt.Sprintf("/jobs/%d", id),
	})
}

// SearchJobs is the find-work page's client-side search: a job matches when
// the query appears in its title or description, case-insensitively. An empty
// query matches everything.
func SearchJobs(jobs []Job, query string) []Job {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return jobs
	}
	out := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if strings.Contains(strings.ToLower(job.Title), query) ||
			strings.Contains(strings.ToLower(job.Description), query) {
			out = append(out, job)
		}
	}
	return out
}

// Sort orders accepted by SortJobs.
const (
	SortNewest     = "newest"
	SortBudgetHigh = "budget-high"
	SortBudgetLow  = "budget-low"
)

// SortJobs returns a newly ordered copy. Unknown orders fall back to newest
// first.
func SortJobs(jobs []Job, order string) []Job {
	out := make([]Job, len(jobs))
	copy(out, jobs)

	switch order {
	case SortBudgetHigh:
		sort.SliceStable(out, func(i, k int) bool { return out[i].Budget > out[k].Budget })
	case SortBudgetLow:
		sort.SliceStable(out, func(i, k int) bool { return out[i].Budget < out[k].Budget })
	default:
		sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	}
	return out
}
