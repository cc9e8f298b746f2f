package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/paypal"
	"github.com/dukerupert/payme/internal/repository"
	"github.com/dukerupert/payme/internal/telemetry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var maxInvoiceAmount = decimal.NewFromInt(1_000_000)

type invoiceService struct {
	repo    repository.Querier
	gw      paypal.Provider
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

var _ domain.InvoiceService = (*invoiceService)(nil)

// NewInvoiceService creates the invoice lifecycle engine. The metrics may
// be nil in tests.
func NewInvoiceService(repo repository.Querier, gw paypal.Provider, metrics *telemetry.BusinessMetrics, logger *slog.Logger) domain.InvoiceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceService{
		repo:    repo,
		gw:      gw,
		metrics: metrics,
		logger:  logger,
	}
}

func validateCreateInvoice(params domain.CreateInvoiceParams) error {
	const op = "invoice.create"

	if params.UserID == "" {
		return domain.Invalid(op, "User ID is required")
	}
	if params.GuildID == "" {
		return domain.Invalid(op, "Guild ID is required")
	}
	if params.ClientDiscordID == "" {
		return domain.Invalid(op, "Client Discord ID is required")
	}
	if !params.Amount.IsPositive() {
		return domain.Invalid(op, "Amount must be positive")
	}
	if params.Amount.GreaterThan(maxInvoiceAmount) {
		return domain.Invalid(op, "Amount too large")
	}
	if params.Currency != "" && len(params.Currency) != 3 {
		return domain.Invalid(op, "Currency must be a 3-letter code")
	}
	if params.Description == "" {
		return domain.Invalid(op, "Description is required")
	}
	if len(params.Description) > 500 {
		return domain.Invalid(op, "Description too long")
	}
	return nil
}

// Create inserts the local DRAFT row first, so a record exists no matter what
// the gateway does. With a recipient email (explicit, or from the address
// book), it then creates and sends the PayPal invoice; each remote failure
// downgrades to a warning instead of failing the call.
func (s *invoiceService) Create(ctx context.Context, params domain.CreateInvoiceParams) (*domain.Invoice, error) {
	if err := validateCreateInvoice(params); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUser(ctx, params.UserID, params.GuildID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPayPalEmailNotConfigured
		}
		return nil, domain.Internal(err, "invoice.create", "failed to load user")
	}
	if user.PaypalEmail == "" {
		return nil, ErrPayPalEmailNotConfigured
	}

	currency := params.Currency
	if currency == "" {
		currency = user.Currency
	}
	if currency == "" {
		currency = "USD"
	}

	recipientEmail := params.ClientEmail
	if recipientEmail == "" {
		client, err := s.repo.GetClient(ctx, params.GuildID, params.UserID, params.ClientDiscordID)
		if err == nil {
			recipientEmail = client.Email
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Internal(err, "invoice.create", "failed to look up client")
		}
	}

	id, err := pgUUID(uuid.NewString())
	if err != nil {
		return nil, domain.Internal(err, "invoice.create", "failed to generate id")
	}

	row, err := s.repo.CreateInvoice(ctx, repository.CreateInvoiceParams{
		ID:              id,
		UserID:          params.UserID,
		GuildID:         params.GuildID,
		ClientDiscordID: params.ClientDiscordID,
		ClientEmail:     recipientEmail,
		Amount:          params.Amount.String(),
		Currency:        currency,
		Description:     params.Description,
	})
	if err != nil {
		return nil, domain.Internal(err, "invoice.create", "failed to create invoice")
	}

	invoice, err := toDomainInvoice(row)
	if err != nil {
		return nil, domain.Internal(err, "invoice.create", "failed to read invoice")
	}

	if s.metrics != nil {
		s.metrics.InvoicesCreated.WithLabelValues(currency).Inc()
		s.metrics.InvoiceAmount.WithLabelValues(currency).Observe(params.Amount.InexactFloat64())
	}

	// Without a recipient email the invoice stays a local draft.
	if recipientEmail == "" {
		return invoice, nil
	}

	remote, err := s.gw.CreateInvoice(ctx, paypal.CreateInvoiceParams{
		InvoiceNumber:  invoice.ID,
		Amount:         params.Amount,
		Currency:       currency,
		Description:    params.Description,
		InvoicerEmail:  user.PaypalEmail,
		RecipientEmail: recipientEmail,
	})
	if err != nil {
		s.logger.Error("paypal create failed",
			slog.String("invoice_id", invoice.ID),
			slog.String("error", err.Error()))
		invoice.Warning = WarningPayPalCreateFailed
		if s.metrics != nil {
			s.metrics.InvoiceWarnings.WithLabelValues("create_failed").Inc()
		}
		return invoice, nil
	}

	// Persist the provider id and link before attempting the send, so the
	// link survives even if emailing fails.
	row, err = s.repo.UpdateInvoicePayPal(ctx, repository.UpdateInvoicePayPalParams{
		ID:              id,
		PaypalInvoiceID: remote.ID,
		PaypalLink:      remote.PayerViewURL,
	})
	if err != nil {
		return nil, domain.Internal(err, "invoice.create", "failed to store provider details")
	}
	invoice, err = toDomainInvoice(row)
	if err != nil {
		return nil, domain.Internal(err, "invoice.create", "failed to read invoice")
	}

	if err := s.gw.SendInvoice(ctx, remote.ID); err != nil {
		s.logger.Error("paypal send failed",
			slog.String("invoice_id", invoice.ID),
			slog.String("paypal_invoice_id", remote.ID),
			slog.String("error", err.Error()))
		invoice.Warning = WarningPayPalSendFailed
		if s.metrics != nil {
			s.metrics.InvoiceWarnings.WithLabelValues("send_failed").Inc()
		}
		return invoice, nil
	}

	row, err = s.repo.UpdateInvoiceStatus(ctx, repository.UpdateInvoiceStatusParams{
		ID:     id,
		Status: string(domain.InvoiceStatusSent),
	})
	if err != nil {
		return nil, domain.Internal(err, "invoice.create", "failed to update status")
	}
	invoice, err = toDomainInvoice(row)
	if err != nil {
		return nil, domain.Internal(err, "invoice.create", "failed to read invoice")
	}

	if s.metrics != nil {
		s.metrics.InvoicesSent.Inc()
	}
	return invoice, nil
}

func (s *invoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	uid, err := pgUUID(id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}

	row, err := s.repo.GetInvoice(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, domain.Internal(err, "invoice.get", "failed to get invoice")
	}

	invoice, err := toDomainInvoice(row)
	if err != nil {
		return nil, domain.Internal(err, "invoice.get", "failed to read invoice")
	}
	return invoice, nil
}

func (s *invoiceService) List(ctx context.Context, filter domain.InvoiceFilter, limit int) ([]domain.Invoice, error) {
	if filter.GuildID == "" {
		return nil, domain.Invalid("invoice.list", "Guild ID is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	rows, err := s.repo.ListInvoices(ctx, repository.ListInvoicesParams{
		GuildID: filter.GuildID,
		UserID:  pgText(filter.UserID),
		Status:  pgText(string(filter.Status)),
		Limit:   int32(limit),
	})
	if err != nil {
		return nil, domain.Internal(err, "invoice.list", "failed to list invoices")
	}

	items, err := toDomainInvoices(rows)
	if err != nil {
		return nil, domain.Internal(err, "invoice.list", "failed to read invoices")
	}
	return items, nil
}

// Cancel rejects paid invoices, then advances local status to CANCELLED no
// matter what the gateway says. Remote cancellation is advisory cleanup;
// local state is the source of truth.
func (s *invoiceService) Cancel(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if invoice.Status == domain.InvoiceStatusPaid {
		return nil, ErrCannotCancelPaid
	}

	if invoice.PayPalInvoiceID != "" {
		if err := s.gw.CancelInvoice(ctx, invoice.PayPalInvoiceID); err != nil {
			s.logger.Error("paypal cancel failed",
				slog.String("invoice_id", invoice.ID),
				slog.String("paypal_invoice_id", invoice.PayPalInvoiceID),
				slog.String("error", err.Error()))
		}
	}

	uid, _ := pgUUID(id)
	row, err := s.repo.UpdateInvoiceStatus(ctx, repository.UpdateInvoiceStatusParams{
		ID:     uid,
		Status: string(domain.InvoiceStatusCancelled),
	})
	if err != nil {
		return nil, domain.Internal(err, "invoice.cancel", "failed to update status")
	}

	updated, err := toDomainInvoice(row)
	if err != nil {
		return nil, domain.Internal(err, "invoice.cancel", "failed to read invoice")
	}
	return updated, nil
}

// remoteCleanup runs the status-appropriate provider call before a local
// delete: drafts are deleted remotely, sent invoices cancelled, terminal
// invoices left alone. Failures are logged and swallowed.
func (s *invoiceService) remoteCleanup(ctx context.Context, invoice domain.Invoice) {
	if invoice.PayPalInvoiceID == "" {
		return
	}

	var err error
	switch invoice.Status {
	case domain.InvoiceStatusDraft:
		err = s.gw.DeleteInvoice(ctx, invoice.PayPalInvoiceID)
	case domain.InvoiceStatusSent:
		err = s.gw.CancelInvoice(ctx, invoice.PayPalInvoiceID)
	default:
		return
	}
	if err != nil {
		s.logger.Error("paypal cleanup failed",
			slog.String("invoice_id", invoice.ID),
			slog.String("paypal_invoice_id", invoice.PayPalInvoiceID),
			slog.String("status", string(invoice.Status)),
			slog.String("error", err.Error()))
	}
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.remoteCleanup(ctx, *invoice)

	uid, _ := pgUUID(id)
	if err := s.repo.DeleteInvoice(ctx, uid); err != nil {
		return domain.Internal(err, "invoice.delete", "failed to delete invoice")
	}

	if s.metrics != nil {
		s.metrics.InvoicesDeleted.Inc()
	}
	return nil
}

// BulkDelete removes every matching invoice. Remote cleanup runs per invoice
// and never aborts the batch; the returned count is local deletions only.
func (s *invoiceService) BulkDelete(ctx context.Context, filter domain.InvoiceFilter) (int, error) {
	if filter.GuildID == "" || filter.UserID == "" {
		return 0, domain.Invalid("invoice.bulk_delete", "Guild ID and User ID are required")
	}

	params := repository.DeleteInvoicesParams{
		GuildID: filter.GuildID,
		UserID:  filter.UserID,
		Status:  pgText(string(filter.Status)),
	}

	rows, err := s.repo.ListInvoicesForDelete(ctx, params)
	if err != nil {
		return 0, domain.Internal(err, "invoice.bulk_delete", "failed to list invoices")
	}

	for _, row := range rows {
		invoice, err := toDomainInvoice(row)
		if err != nil {
			s.logger.Error("skipping cleanup for unreadable invoice", slog.String("error", err.Error()))
			continue
		}
		s.remoteCleanup(ctx, *invoice)
	}

	count, err := s.repo.DeleteInvoices(ctx, params)
	if err != nil {
		return 0, domain.Internal(err, "invoice.bulk_delete", "failed to delete invoices")
	}

	if s.metrics != nil {
		s.metrics.InvoicesDeleted.Add(float64(count))
	}
	return int(count), nil
}

// Remind re-sends the provider invoice email. Local status is unchanged.
func (s *invoiceService) Remind(ctx context.Context, id string) (*domain.ReminderInfo, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if invoice.PayPalInvoiceID == "" || invoice.PayPalLink == "" {
		return nil, ErrNotEligibleForReminder
	}

	if err := s.gw.SendInvoice(ctx, invoice.PayPalInvoiceID); err != nil {
		return nil, domain.WrapError(err, domain.EPAYMENT, "invoice.remind", "Failed to send reminder")
	}

	return &domain.ReminderInfo{
		Amount:          invoice.Amount,
		Currency:        invoice.Currency,
		Description:     invoice.Description,
		ClientDiscordID: invoice.ClientDiscordID,
		PayPalLink:      invoice.PayPalLink,
	}, nil
}

// MarkPaidByPayPalID applies a provider paid event. Re-applying PAID is a
// no-op reported via Changed=false; an unknown provider id yields a nil
// Invoice, also with Changed=false.
func (s *invoiceService) MarkPaidByPayPalID(ctx context.Context, paypalInvoiceID string) (*domain.ReconcileResult, error) {
	row, err := s.repo.MarkInvoicePaid(ctx, repository.MarkInvoicePaidParams{
		PaypalInvoiceID: paypalInvoiceID,
		PaidAt:          pgtype.Timestamptz{Time: time.Now(), Valid: true},
	})
	if err == nil {
		invoice, convErr := toDomainInvoice(row)
		if convErr != nil {
			return nil, domain.Internal(convErr, "invoice.mark_paid", "failed to read invoice")
		}
		return &domain.ReconcileResult{Invoice: invoice, Changed: true}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Internal(err, "invoice.mark_paid", "failed to mark invoice paid")
	}

	// No open invoice matched: either the id is unknown, or the invoice is
	// already PAID (a duplicate delivery).
	existing, err := s.repo.GetInvoiceByPayPalID(ctx, paypalInvoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.ReconcileResult{}, nil
		}
		return nil, domain.Internal(err, "invoice.mark_paid", "failed to look up invoice")
	}

	invoice, err := toDomainInvoice(existing)
	if err != nil {
		return nil, domain.Internal(err, "invoice.mark_paid", "failed to read invoice")
	}
	return &domain.ReconcileResult{Invoice: invoice, Changed: false}, nil
}

func (s *invoiceService) CancelByPayPalID(ctx context.Context, paypalInvoiceID string) (int, error) {
	count, err := s.repo.MarkInvoicesCancelledByPayPalID(ctx, paypalInvoiceID)
	if err != nil {
		return 0, domain.Internal(err, "invoice.cancel_by_paypal_id", "failed to cancel invoices")
	}
	return int(count), nil
}

// CancelOverdue force-cancels SENT invoices created before the cutoff,
// running the same path as a manual cancel. Per-invoice failures are logged
// and skipped.
func (s *invoiceService) CancelOverdue(ctx context.Context, olderThan time.Time) (int, error) {
	rows, err := s.repo.ListStaleSentInvoices(ctx, pgtype.Timestamptz{Time: olderThan, Valid: true})
	if err != nil {
		return 0, domain.Internal(err, "invoice.cancel_overdue", "failed to list stale invoices")
	}

	cancelled := 0
	for _, row := range rows {
		id := uuidString(row.ID)
		if _, err := s.Cancel(ctx, id); err != nil {
			s.logger.Error("failed to auto-cancel invoice",
				slog.String("invoice_id", id),
				slog.String("error", err.Error()))
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

// Stats aggregates a user's invoices by status and currency. Drafts and
// cancellations count toward totals but not amounts.
func (s *invoiceService) Stats(ctx context.Context, userID, guildID string) (*domain.UserStats, error) {
	if userID == "" {
		return nil, domain.Invalid("invoice.stats", "User ID is required")
	}

	rows, err := s.repo.ListInvoicesForUser(ctx, repository.ListInvoicesForUserParams{
		UserID:  userID,
		GuildID: pgText(guildID),
	})
	if err != nil {
		return nil, domain.Internal(err, "invoice.stats", "failed to list invoices")
	}

	stats := &domain.UserStats{
		Total:      len(rows),
		Currencies: make(map[string]*domain.CurrencyTotals),
	}

	for _, row := range rows {
		invoice, err := toDomainInvoice(row)
		if err != nil {
			return nil, domain.Internal(err, "invoice.stats", "failed to read invoice")
		}

		totals, ok := stats.Currencies[invoice.Currency]
		if !ok {
			totals = &domain.CurrencyTotals{}
			stats.Currencies[invoice.Currency] = totals
		}

		switch invoice.Status {
		case domain.InvoiceStatusDraft:
			stats.Draft++
		case domain.InvoiceStatusSent:
			stats.Sent++
			stats.TotalInvoiced = stats.TotalInvoiced.Add(invoice.Amount)
			stats.TotalPending = stats.TotalPending.Add(invoice.Amount)
			totals.Invoiced = totals.Invoiced.Add(invoice.Amount)
			totals.Pending = totals.Pending.Add(invoice.Amount)
		case domain.InvoiceStatusPaid:
			stats.Paid++
			stats.TotalInvoiced = stats.TotalInvoiced.Add(invoice.Amount)
			stats.TotalPaid = stats.TotalPaid.Add(invoice.Amount)
			totals.Invoiced = totals.Invoiced.Add(invoice.Amount)
			totals.Paid = totals.Paid.Add(invoice.Amount)
		case domain.InvoiceStatusCancelled:
			stats.Cancelled++
		}
	}

	return stats, nil
}
