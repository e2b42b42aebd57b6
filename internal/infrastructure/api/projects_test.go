package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// recordingBackend captures the request line of each call and replies with a
// canned body, for verifying the URL contracts of the smaller API groups.
type recordingBackend struct {
	method string
	path   string
	query  string
	body   map[string]any
	reply  string
	status int
}

func (rb *recordingBackend) serve(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rb.method, rb.path, rb.query = r.Method, r.URL.Path, r.URL.RawQuery
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rb.body)
		}
		if rb.status != 0 {
			w.WriteHeader(rb.status)
		}
		_, _ = w.Write([]byte(rb.reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBidsAPI_Endpoints(t *testing.T) {
	rb := &recordingBackend{reply: `[]`}
	srv := rb.serve(t)
	bids := NewBidsAPI(NewClient(srv.URL))
	ctx := context.Background()

	if _, err := bids.ListByJob(ctx, 5); err != nil {
		t.Fatalf("ListByJob: %v", err)
	}
	if rb.path != "/jobs/5/bids" {
		t.Fatalf("unexpected path: %s", rb.path)
	}

	rb.reply = `{}`
	if err := bids.Accept(ctx, 9); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if rb.method != http.MethodPut || rb.path != "/bids/9/accept" {
		t.Fatalf("unexpected accept request: %s %s", rb.method, rb.path)
	}
}

func TestProjectsAPI_Endpoints(t *testing.T) {
	rb := &recordingBackend{reply: `{}`}
	srv := rb.serve(t)
	projects := NewProjectsAPI(NewClient(srv.URL))
	ctx := context.Background()

	if _, err := projects.AcceptBid(ctx, 3, "Site build", ""); err != nil {
		t.Fatalf("AcceptBid: %v", err)
	}
	if rb.path != "/projects/accept-bid/3" {
		t.Fatalf("unexpected path: %s", rb.path)
	}
	if _, present := rb.body["description"]; present {
		t.Fatalf("empty description must be omitted, got %v", rb.body)
	}

	if err := projects.UpdateTaskStatus(ctx, 3, 11, "DONE"); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	if rb.method != http.MethodPatch || rb.path != "/projects/3/tasks/11/status" {
		t.Fatalf("unexpected request: %s %s", rb.method, rb.path)
	}
	if rb.body["status"] != "DONE" {
		t.Fatalf("unexpected body: %v", rb.body)
	}

	rb.reply = `[]`
	if _, err := projects.Messages(ctx, 8, 0, 0); err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if rb.path != "/conversations/8/messages" || rb.query != "page=0&size=50" {
		t.Fatalf("unexpected request: %s?%s", rb.path, rb.query)
	}
}

func TestPaymentsAPI_Endpoints(t *testing.T) {
	rb := &recordingBackend{reply: `{"success":true,"paymentUrl":"https://khalti.example/pay"}`}
	srv := rb.serve(t)
	payments := NewPaymentsAPI(NewClient(srv.URL))
	ctx := context.Background()

	res, err := payments.Initiate(ctx, 4, GatewayKhalti, "https://app/return", "")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if rb.path != "/payments/4/initiate" {
		t.Fatalf("unexpected path: %s", rb.path)
	}
	if rb.body["gateway"] != GatewayKhalti || rb.body["returnUrl"] != "https://app/return" {
		t.Fatalf("unexpected body: %v", rb.body)
	}
	if _, present := rb.body["cancelUrl"]; present {
		t.Fatalf("empty cancel url must be omitted")
	}
	if !res.Success || res.PaymentURL == "" {
		t.Fatalf("unexpected result: %+v", res)
	}

	rb.reply = `{"success":true,"verified":true}`
	if _, err := payments.Verify(ctx, "txn-77"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if rb.method != http.MethodPost || rb.path != "/payments/verify/txn-77" {
		t.Fatalf("unexpected request: %s %s", rb.method, rb.path)
	}
}

func TestInvoicesAPI_ListFilter(t *testing.T) {
	rb := &recordingBackend{reply: `[]`}
	srv := rb.serve(t)
	invoices := NewInvoicesAPI(NewClient(srv.URL))

	if _, err := invoices.List(context.Background(), InvoiceFilter{ProjectID: 2, Status: "UNPAID"}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rb.query != "projectId=2&status=UNPAID" {
		t.Fatalf("unexpected query: %q", rb.query)
	}
}
