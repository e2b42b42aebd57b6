package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Bid is a freelancer's proposal on a job.
type Bid struct {
	ID                      int64     `json:"id"`
	JobID                   int64     `json:"jobId"`
	FreelancerID            int64     `json:"freelancerId"`
	Amount                  float64   `json:"amount"`
	Proposal                string    `json:"proposal"`
	Status                  string    `json:"status"`
	EstimatedCompletionDate string    `json:"estimatedCompletionDate,omitempty"`
	CreatedAt               time.Time `json:"createdAt"`
}

// BidFilter narrows a listing; zero values mean "any".
type BidFilter struct {
	JobID        int64
	FreelancerID int64
	Status       string
}

// BidDraft is the payload for submitting a proposal.
type BidDraft struct {
	JobID                   int64   `json:"jobId"`
	Amount                  float64 `json:"amount"`
	Proposal                string  `json:"proposal"`
	EstimatedCompletionDate string  `json:"estimatedCompletionDate,omitempty"`
}

// BidsAPI talks to the /bids endpoints.
type BidsAPI struct {
	c *Client
}

func NewBidsAPI(c *Client) *BidsAPI {
	return &BidsAPI{c: c}
}

func (b *BidsAPI) List(ctx context.Context, f BidFilter) ([]Bid, error) {
	q := url.Values{}
	if f.JobID != 0 {
		q.Set("jobId", strconv.FormatInt(f.JobID, 10))
	}
	if f.FreelancerID != 0 {
		q.Set("freelancerId", strconv.FormatInt(f.FreelancerID, 10))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}

	var out []Bid
	err := b.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "bids_list",
		path:     "/bids",
		query:    q,
		out:      &out,
	})
	return out, err
}

func (b *BidsAPI) ListByJob(ctx context.Context, jobID int64) ([]Bid, error) {
	var out []Bid
	err := b.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "bids_list_by_job",
		path:     fmt.Sprintf("/jobs/%d/bids", jobID),
		out:      &out,
	})
	return out, err
}

func (b *BidsAPI) Get(ctx context.Context, id int64) (*Bid, error) {
	var out Bid
	err := b.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "bids_get",
		path:     fmt.Sprintf("/bids/%d", id),
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BidsAPI) Create(ctx context.Context, draft BidDraft) (*Bid, error) {
	var out Bid
	err := b.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "bids_create",
		path:     "/bids",
		body:     draft,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BidsAPI) Accept(ctx context.Context, id int64) error {
	return b.c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "bids_accept",
		path:     fmt.Sprintf("/bids/%d/accept", id),
	})
}
