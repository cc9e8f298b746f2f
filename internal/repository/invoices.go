package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const invoiceColumns = `id, user_id, guild_id, client_discord_id, client_email, amount::text, currency, description, status, paypal_invoice_id, paypal_link, created_at, paid_at`

func scanInvoice(row pgx.Row) (Invoice, error) {
	var i Invoice
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.GuildID,
		&i.ClientDiscordID,
		&i.ClientEmail,
		&i.Amount,
		&i.Currency,
		&i.Description,
		&i.Status,
		&i.PaypalInvoiceID,
		&i.PaypalLink,
		&i.CreatedAt,
		&i.PaidAt,
	)
	return i, err
}

func collectInvoices(rows pgx.Rows) ([]Invoice, error) {
	defer rows.Close()
	var items []Invoice
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createInvoice = `
INSERT INTO invoices (id, user_id, guild_id, client_discord_id, client_email, amount, currency, description, status)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, 'DRAFT')
RETURNING ` + invoiceColumns

type CreateInvoiceParams struct {
	ID              pgtype.UUID
	UserID          string
	GuildID         string
	ClientDiscordID string
	ClientEmail     string
	Amount          string
	Currency        string
	Description     string
}

// CreateInvoice inserts a new invoice in DRAFT status.
func (q *Queries) CreateInvoice(ctx context.Context, arg CreateInvoiceParams) (Invoice, error) {
	row := q.db.QueryRow(ctx, createInvoice,
		arg.ID,
		arg.UserID,
		arg.GuildID,
		arg.ClientDiscordID,
		arg.ClientEmail,
		arg.Amount,
		arg.Currency,
		arg.Description,
	)
	return scanInvoice(row)
}

const getInvoice = `
SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

func (q *Queries) GetInvoice(ctx context.Context, id pgtype.UUID) (Invoice, error) {
	return scanInvoice(q.db.QueryRow(ctx, getInvoice, id))
}

const getInvoiceByPayPalID = `
SELECT ` + invoiceColumns + ` FROM invoices WHERE paypal_invoice_id = $1`

func (q *Queries) GetInvoiceByPayPalID(ctx context.Context, paypalInvoiceID string) (Invoice, error) {
	return scanInvoice(q.db.QueryRow(ctx, getInvoiceByPayPalID, paypalInvoiceID))
}

const listInvoices = `
SELECT ` + invoiceColumns + ` FROM invoices
WHERE guild_id = $1
  AND ($2::text IS NULL OR user_id = $2)
  AND ($3::text IS NULL OR status = $3)
ORDER BY created_at DESC
LIMIT $4`

type ListInvoicesParams struct {
	GuildID string
	UserID  pgtype.Text
	Status  pgtype.Text
	Limit   int32
}

// ListInvoices returns a guild's invoices, newest first, optionally narrowed
// to one issuer or one status.
func (q *Queries) ListInvoices(ctx context.Context, arg ListInvoicesParams) ([]Invoice, error) {
	rows, err := q.db.Query(ctx, listInvoices, arg.GuildID, arg.UserID, arg.Status, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectInvoices(rows)
}

const updateInvoicePayPal = `
UPDATE invoices
SET paypal_invoice_id = $2, paypal_link = $3
WHERE id = $1
RETURNING ` + invoiceColumns

type UpdateInvoicePayPalParams struct {
	ID              pgtype.UUID
	PaypalInvoiceID string
	PaypalLink      string
}

// UpdateInvoicePayPal records the provider invoice id and payment link.
func (q *Queries) UpdateInvoicePayPal(ctx context.Context, arg UpdateInvoicePayPalParams) (Invoice, error) {
	row := q.db.QueryRow(ctx, updateInvoicePayPal, arg.ID, arg.PaypalInvoiceID, arg.PaypalLink)
	return scanInvoice(row)
}

const updateInvoiceStatus = `
UPDATE invoices SET status = $2 WHERE id = $1
RETURNING ` + invoiceColumns

type UpdateInvoiceStatusParams struct {
	ID     pgtype.UUID
	Status string
}

func (q *Queries) UpdateInvoiceStatus(ctx context.Context, arg UpdateInvoiceStatusParams) (Invoice, error) {
	row := q.db.QueryRow(ctx, updateInvoiceStatus, arg.ID, arg.Status)
	return scanInvoice(row)
}

const markInvoicePaid = `
UPDATE invoices
SET status = 'PAID', paid_at = $2
WHERE paypal_invoice_id = $1 AND status <> 'PAID'
RETURNING ` + invoiceColumns

type MarkInvoicePaidParams struct {
	PaypalInvoiceID string
	PaidAt          pgtype.Timestamptz
}

// MarkInvoicePaid transitions the invoice with the given provider id to PAID
// and stamps paid_at. Returns pgx.ErrNoRows when no open invoice matches,
// which includes the already-paid case.
func (q *Queries) MarkInvoicePaid(ctx context.Context, arg MarkInvoicePaidParams) (Invoice, error) {
	row := q.db.QueryRow(ctx, markInvoicePaid, arg.PaypalInvoiceID, arg.PaidAt)
	return scanInvoice(row)
}

const markInvoicesCancelledByPayPalID = `
UPDATE invoices
SET status = 'CANCELLED'
WHERE paypal_invoice_id = $1 AND status NOT IN ('PAID', 'CANCELLED')`

// MarkInvoicesCancelledByPayPalID cancels every open invoice carrying the
// given provider id and reports how many rows changed. Paid invoices are
// never downgraded.
func (q *Queries) MarkInvoicesCancelledByPayPalID(ctx context.Context, paypalInvoiceID string) (int64, error) {
	tag, err := q.db.Exec(ctx, markInvoicesCancelledByPayPalID, paypalInvoiceID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteInvoice = `
DELETE FROM invoices WHERE id = $1`

func (q *Queries) DeleteInvoice(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deleteInvoice, id)
	return err
}

const listInvoicesForDelete = `
SELECT ` + invoiceColumns + ` FROM invoices
WHERE guild_id = $1 AND user_id = $2
  AND ($3::text IS NULL OR status = $3)`

type DeleteInvoicesParams struct {
	GuildID string
	UserID  string
	Status  pgtype.Text
}

// ListInvoicesForDelete returns the invoices a bulk delete would remove, so
// provider-side cleanup can run before the local rows go away.
func (q *Queries) ListInvoicesForDelete(ctx context.Context, arg DeleteInvoicesParams) ([]Invoice, error) {
	rows, err := q.db.Query(ctx, listInvoicesForDelete, arg.GuildID, arg.UserID, arg.Status)
	if err != nil {
		return nil, err
	}
	return collectInvoices(rows)
}

const deleteInvoices = `
DELETE FROM invoices
WHERE guild_id = $1 AND user_id = $2
  AND ($3::text IS NULL OR status = $3)`

// DeleteInvoices removes an issuer's invoices in a guild, optionally limited
// to one status, and reports how many rows were deleted.
func (q *Queries) DeleteInvoices(ctx context.Context, arg DeleteInvoicesParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteInvoices, arg.GuildID, arg.UserID, arg.Status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listStaleSentInvoices = `
SELECT ` + invoiceColumns + ` FROM invoices
WHERE status = 'SENT' AND created_at < $1
ORDER BY created_at ASC`

// ListStaleSentInvoices returns SENT invoices created before the cutoff.
func (q *Queries) ListStaleSentInvoices(ctx context.Context, cutoff pgtype.Timestamptz) ([]Invoice, error) {
	rows, err := q.db.Query(ctx, listStaleSentInvoices, cutoff)
	if err != nil {
		return nil, err
	}
	return collectInvoices(rows)
}

const listInvoicesForUser = `
SELECT ` + invoiceColumns + ` FROM invoices
WHERE user_id = $1
  AND ($2::text IS NULL OR guild_id = $2)
ORDER BY created_at DESC`

type ListInvoicesForUserParams struct {
	UserID  string
	GuildID pgtype.Text
}

// ListInvoicesForUser returns every invoice an issuer created, across guilds
// unless one is given. Used for stats aggregation.
func (q *Queries) ListInvoicesForUser(ctx context.Context, arg ListInvoicesForUserParams) ([]Invoice, error) {
	rows, err := q.db.Query(ctx, listInvoicesForUser, arg.UserID, arg.GuildID)
	if err != nil {
		return nil, err
	}
	return collectInvoices(rows)
}
