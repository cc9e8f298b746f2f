package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
// DRAFT and SENT are live states; PAID and CANCELLED are terminal.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is a final state. Invoices never transition
// out of PAID or CANCELLED.
func (s InvoiceStatus) Terminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// Invoice is a request for payment tracked through DRAFT/SENT/PAID/CANCELLED,
// mirrored to PayPal once a recipient email is known.
type Invoice struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	GuildID         string          `json:"guildId"`
	ClientDiscordID string          `json:"clientDiscordId"`
	ClientEmail     string          `json:"clientEmail,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	Status          InvoiceStatus   `json:"status"`

	// PayPalInvoiceID is set once remote creation succeeds and never changes.
	PayPalInvoiceID string `json:"paypalInvoiceId,omitempty"`
	PayPalLink      string `json:"paypalLink,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`

	// Warning annotates a degraded-but-successful create (remote create or
	// send failed). It is returned to the caller, not persisted.
	Warning string `json:"warning,omitempty"`
}

// CreateInvoiceParams are the inputs to invoice creation.
type CreateInvoiceParams struct {
	UserID          string
	GuildID         string
	ClientDiscordID string
	// ClientEmail, when set, always wins over the saved address-book email.
	ClientEmail string
	Amount      decimal.Decimal
	// Currency is optional; defaults to the user's configured currency, else USD.
	Currency    string
	Description string
}

// InvoiceFilter selects invoices for listing and bulk deletion.
// GuildID is required; UserID and Status narrow the match when set.
type InvoiceFilter struct {
	GuildID string
	UserID  string
	Status  InvoiceStatus
}

// ReminderInfo is returned from a successful reminder so the caller can
// notify the client.
type ReminderInfo struct {
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	ClientDiscordID string          `json:"clientDiscordId"`
	PayPalLink      string          `json:"paypalLink"`
}

// CurrencyTotals aggregates invoiced/paid/pending amounts for one currency.
type CurrencyTotals struct {
	Invoiced decimal.Decimal `json:"invoiced"`
	Paid     decimal.Decimal `json:"paid"`
	Pending  decimal.Decimal `json:"pending"`
}

// UserStats summarizes a user's invoices, optionally scoped to one guild.
// Totals only count invoices that reached SENT or PAID; drafts and
// cancellations contribute to counts but not amounts.
type UserStats struct {
	Total     int `json:"total"`
	Draft     int `json:"draft"`
	Sent      int `json:"sent"`
	Paid      int `json:"paid"`
	Cancelled int `json:"cancelled"`

	TotalInvoiced decimal.Decimal `json:"totalInvoiced"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalPending  decimal.Decimal `json:"totalPending"`

	Currencies map[string]*CurrencyTotals `json:"currencies"`
}

// ReconcileResult reports the outcome of applying a provider event.
type ReconcileResult struct {
	// Invoice is the post-transition invoice, nil when no local invoice
	// matched the provider ID.
	Invoice *Invoice

	// Changed is false when the event was a duplicate (the invoice was
	// already in the target terminal state).
	Changed bool
}

// InvoiceService is the invoice lifecycle engine.
type InvoiceService interface {
	// Create inserts a local DRAFT invoice, then best-effort creates and
	// sends the PayPal invoice when a recipient email can be resolved.
	// Gateway failures downgrade to a Warning on the returned invoice.
	Create(ctx context.Context, params CreateInvoiceParams) (*Invoice, error)

	Get(ctx context.Context, id string) (*Invoice, error)

	List(ctx context.Context, filter InvoiceFilter, limit int) ([]Invoice, error)

	// Cancel rejects PAID invoices, best-effort cancels the PayPal invoice,
	// and always advances local status to CANCELLED.
	Cancel(ctx context.Context, id string) (*Invoice, error)

	// Delete removes the local row after best-effort remote cleanup
	// (delete for DRAFT, cancel for SENT, nothing for terminal states).
	Delete(ctx context.Context, id string) error

	// BulkDelete removes all invoices matching the filter and returns the
	// count of locally deleted rows. Remote cleanup failures never abort
	// the batch.
	BulkDelete(ctx context.Context, filter InvoiceFilter) (int, error)

	// Remind re-sends the PayPal invoice email. The invoice must have a
	// provider ID and payment link.
	Remind(ctx context.Context, id string) (*ReminderInfo, error)

	// MarkPaidByPayPalID applies a provider paid event idempotently.
	MarkPaidByPayPalID(ctx context.Context, paypalInvoiceID string) (*ReconcileResult, error)

	// CancelByPayPalID applies a provider cancelled event to all matching
	// invoices.
	CancelByPayPalID(ctx context.Context, paypalInvoiceID string) (int, error)

	// CancelOverdue cancels SENT invoices created before the cutoff,
	// isolating per-invoice failures. Returns the number cancelled.
	CancelOverdue(ctx context.Context, olderThan time.Time) (int, error)

	Stats(ctx context.Context, userID, guildID string) (*UserStats, error)
}
