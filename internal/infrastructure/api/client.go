// Package api is the thin REST client through which every backend call flows:
// JSON encoding, bearer credentials, request IDs, metrics, and a uniform error
// envelope. API groups (auth, jobs, bids, …) are built on top of Client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sajilokaam/client-core/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Client is the shared transport for all API groups.
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string
	log     zerolog.Logger
}

// ClientOption tweaks Client construction.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests inject the
// httptest client here).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithTokenSource sets the function consulted for the bearer token on every
// request. An empty return means the request goes out unauthenticated.
func WithTokenSource(fn func() string) ClientOption {
	return func(c *Client) { c.token = fn }
}

// WithLogger attaches a logger for transport-level failures.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient builds a client rooted at baseURL (e.g. "http://host:8080/api").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		token:   func() string { return "" },
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Error is the decoded failure envelope of a non-2xx response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// StatusCode exposes the HTTP status for callers mapping failures to
// field-level handling (401 → password field, 409 → email field, …).
func (e *Error) StatusCode() int { return e.Status }

// IsStatus reports whether err is an API error with the given status.
func IsStatus(err error, status int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == status
}

func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }
func IsConflict(err error) bool     { return IsStatus(err, http.StatusConflict) }
func IsNotFound(err error) bool     { return IsStatus(err, http.StatusNotFound) }

// call describes one request. endpoint is the logical name used in metrics,
// never the raw path (paths carry IDs and would explode label cardinality).
type call struct {
	method   string
	endpoint string
	path     string
	query    url.Values
	token    string // explicit bearer; falls back to the token source
	body     any
	out      any
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", cl.endpoint, err)
		}
		body = bytes.NewReader(buf)
	}

	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", cl.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(cl.token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(cl.method, cl.endpoint, "error").Inc()
		c.log.Warn().Err(err).Str("endpoint", cl.endpoint).Msg("api request failed")
		return fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(cl.method, cl.endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.APIRequestDuration.WithLabelValues(cl.endpoint).Observe(time.Since(start).Seconds())

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("endpoint", cl.endpoint).
			Msg("api request rejected")
		return apiErr
	}

	if cl.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return fmt.Errorf("decode %s response: %w", cl.endpoint, err)
	}
	return nil
}

func (c *Client) bearer(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return c.token()
}

// decodeErrorMessage pulls the human-readable message out of a failure body.
// The backend answers {"message": …}; some deployments answer {"error": …}.
// Both are accepted, garbage bodies yield "".
func decodeErrorMessage(r io.Reader) string {
	var envelope struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Err
}
