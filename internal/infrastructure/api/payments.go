package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Payment gateways the backend can hand a payment off to.
const (
	GatewayKhalti = "KHALTI"
	GatewayEsewa  = "ESEWA"
)

// Payment records money moved against an invoice.
type Payment struct {
	ID            int64     `json:"id"`
	InvoiceID     int64     `json:"invoiceId"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	PaidAt        string    `json:"paidAt,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentDraft is the payload for recording a payment against an invoice.
type PaymentDraft struct {
	InvoiceID        int64   `json:"invoiceId"`
	Amount           float64 `json:"amount"`
	PaymentMethod    string  `json:"paymentMethod"`
	PaymentReference string  `json:"paymentReference,omitempty"`
	Status           string  `json:"status,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

// InitiateResult is the gateway hand-off: on success PaymentURL is where the
// payer must be sent. The redirect itself, and all signing/verification, is
// backend and gateway territory.
type InitiateResult struct {
	Success       bool   `json:"success"`
	PaymentURL    string `json:"paymentUrl,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message,omitempty"`
}

// VerifyResult reports the backend's post-payment verification.
type VerifyResult struct {
	Success  bool   `json:"success"`
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}

// PaymentsAPI talks to the /payments endpoints.
type PaymentsAPI struct {
	c *Client
}

func NewPaymentsAPI(c *Client) *PaymentsAPI {
	return &PaymentsAPI{c: c}
}

func (p *PaymentsAPI) Create(ctx context.Context, draft PaymentDraft) (*Payment, error) {
	var out Payment
	err := p.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "payments_create",
		path:     "/payments",
		body:     draft,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Initiate asks the backend to start a gateway transaction for the payment.
func (p *PaymentsAPI) Initiate(ctx context.Context, paymentID int64, gateway, returnURL, cancelURL string) (*InitiateResult, error) {
	body := map[string]string{"gateway": gateway}
	if returnURL != "" {
		body["returnUrl"] = returnURL
	}
	if cancelURL != "" {
		body["cancelUrl"] = cancelURL
	}

	var out InitiateResult
	err := p.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "payments_initiate",
		path:     fmt.Sprintf("/payments/%d/initiate", paymentID),
		body:     body,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PaymentsAPI) Verify(ctx context.Context, transactionID string) (*VerifyResult, error) {
	var out VerifyResult
	err := p.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "payments_verify",
		path:     "/payments/verify/" + transactionID,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PaymentsAPI) ByInvoice(ctx context.Context, invoiceID int64) ([]Payment, error) {
	var out []Payment
	err := p.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "payments_by_invoice",
		path:     fmt.Sprintf("/payments/invoice/%d", invoiceID),
		out:      &out,
	})
	return out, err
}
