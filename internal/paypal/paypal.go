package paypal

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Provider defines the interface to the remote invoicing gateway.
// The production implementation calls the PayPal Invoicing v2 REST API.
type Provider interface {
	// CreateInvoice creates a draft invoice at the provider and returns its
	// id and payer view link. The invoice is not sent to the recipient yet.
	CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*Invoice, error)

	// SendInvoice emails a previously created draft invoice to the
	// recipient. Also used to re-send as a payment reminder.
	SendInvoice(ctx context.Context, paypalInvoiceID string) error

	// CancelInvoice cancels a sent invoice. A 404 or 422 from the provider
	// (already cancelled, wrong state) is treated as success.
	CancelInvoice(ctx context.Context, paypalInvoiceID string) error

	// DeleteInvoice removes a draft invoice. A 404 (already deleted) is
	// treated as success.
	DeleteInvoice(ctx context.Context, paypalInvoiceID string) error

	// GetInvoice fetches the full invoice record from the provider.
	GetInvoice(ctx context.Context, paypalInvoiceID string) (*InvoiceDetail, error)

	// VerifyWebhookSignature asks the provider whether an inbound webhook
	// delivery is authentic. Returns false on any verification failure.
	VerifyWebhookSignature(ctx context.Context, params VerifyWebhookParams) (bool, error)
}

// CreateInvoiceParams contains parameters for creating a draft invoice.
type CreateInvoiceParams struct {
	// InvoiceNumber is our internal invoice id, recorded at the provider
	// for cross-referencing.
	InvoiceNumber string

	Amount      decimal.Decimal
	Currency    string
	Description string

	// InvoicerEmail is the issuer's PayPal account email.
	InvoicerEmail string

	// RecipientEmail is where the provider sends the invoice.
	RecipientEmail string
}

// Invoice is the provider-side identity of a created invoice.
type Invoice struct {
	ID string

	// PayerViewURL is the link a recipient opens to pay. When the provider
	// omits it, a constructed link is substituted.
	PayerViewURL string

	Status string
}

// InvoiceDetail is the subset of the provider's full invoice record we read.
type InvoiceDetail struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Detail invoiceDetailIn `json:"detail"`
}

type invoiceDetailIn struct {
	Metadata struct {
		RecipientViewURL string `json:"recipient_view_url"`
	} `json:"metadata"`
}

// RecipientViewURL returns the payer link embedded in the invoice record,
// or "" when the provider did not include one.
func (d *InvoiceDetail) RecipientViewURL() string {
	return d.Detail.Metadata.RecipientViewURL
}

// VerifyWebhookParams carries the signature headers of a webhook delivery
// plus the raw event body, exactly as received.
type VerifyWebhookParams struct {
	AuthAlgo         string
	CertURL          string
	TransmissionID   string
	TransmissionSig  string
	TransmissionTime string
	Event            json.RawMessage
}
