package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Invoice bills a client for project work.
type Invoice struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"projectId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	TotalAmount   float64   `json:"totalAmount"`
	Status        string    `json:"status"`
	DueDate       string    `json:"dueDate,omitempty"`
	PaidAt        string    `json:"paidAt,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InvoiceFilter narrows a listing; zero values mean "any".
type InvoiceFilter struct {
	ClientID     int64
	FreelancerID int64
	ProjectID    int64
	Status       string
}

// InvoicesAPI talks to the /invoices endpoints.
type InvoicesAPI struct {
	c *Client
}

func NewInvoicesAPI(c *Client) *InvoicesAPI {
	return &InvoicesAPI{c: c}
}

func (i *InvoicesAPI) List(ctx context.Context, f InvoiceFilter) ([]Invoice, error) {
	q := url.Values{}
	if f.ClientID != 0 {
		q.Set("clientId", strconv.FormatInt(f.ClientID, 10))
	}
	if f.FreelancerID != 0 {
		q.Set("freelancerId", strconv.FormatInt(f.FreelancerID, 10))
	}
	if f.ProjectID != 0 {
		q.Set("projectId", strconv.FormatInt(f.ProjectID, 10))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}

	var out []Invoice
	err := i.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "invoices_list",
		path:     "/invoices",
		query:    q,
		out:      &out,
	})
	return out, err
}

func (i *InvoicesAPI) Get(ctx context.Context, id int64) (*Invoice, error) {
	var out Invoice
	err := i.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "invoices_get",
		path:     fmt.Sprintf("/invoices/%d", id),
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
