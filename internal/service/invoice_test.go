package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/paypal"
	"github.com/dukerupert/payme/internal/repository"
	"github.com/dukerupert/payme/internal/telemetry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Helper functions for creating test data
func newTestInvoiceID() pgtype.UUID {
	id := pgtype.UUID{}
	_ = id.Scan(uuid.New().String())
	return id
}

func testUser(paypalEmail string) repository.User {
	return repository.User{
		ID:          "user-1",
		Email:       "freelancer@example.com",
		PaypalEmail: paypalEmail,
		Currency:    "USD",
	}
}

func testInvoiceRow(id pgtype.UUID, status string) repository.Invoice {
	return repository.Invoice{
		ID:              id,
		UserID:          "user-1",
		GuildID:         "guild-1",
		ClientDiscordID: "client-1",
		ClientEmail:     "client@example.com",
		Amount:          "150.00",
		Currency:        "USD",
		Description:     "Logo design",
		Status:          status,
		CreatedAt:       pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
}

func validCreateParams() domain.CreateInvoiceParams {
	return domain.CreateInvoiceParams{
		UserID:          "user-1",
		GuildID:         "guild-1",
		ClientDiscordID: "client-1",
		ClientEmail:     "client@example.com",
		Amount:          decimal.NewFromInt(150),
		Currency:        "USD",
		Description:     "Logo design",
	}
}

// Test_CreateInvoice_Validation verifies inputs are rejected before any
// storage or gateway call is made.
func Test_CreateInvoice_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.CreateInvoiceParams)
	}{
		{
			name:   "missing user id",
			mutate: func(p *domain.CreateInvoiceParams) { p.UserID = "" },
		},
		{
			name:   "missing guild id",
			mutate: func(p *domain.CreateInvoiceParams) { p.GuildID = "" },
		},
		{
			name:   "missing client discord id",
			mutate: func(p *domain.CreateInvoiceParams) { p.ClientDiscordID = "" },
		},
		{
			name:   "zero amount",
			mutate: func(p *domain.CreateInvoiceParams) { p.Amount = decimal.Zero },
		},
		{
			name:   "negative amount",
			mutate: func(p *domain.CreateInvoiceParams) { p.Amount = decimal.NewFromInt(-5) },
		},
		{
			name:   "amount too large",
			mutate: func(p *domain.CreateInvoiceParams) { p.Amount = decimal.NewFromInt(1_000_001) },
		},
		{
			name:   "bad currency code",
			mutate: func(p *domain.CreateInvoiceParams) { p.Currency = "USDT" },
		},
		{
			name:   "missing description",
			mutate: func(p *domain.CreateInvoiceParams) { p.Description = "" },
		},
		{
			name: "description too long",
			mutate: func(p *domain.CreateInvoiceParams) {
				long := make([]byte, 501)
				for i := range long {
					long[i] = 'x'
				}
				p.Description = string(long)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: any repo or gateway call fails the test.
			mockRepo := repository.NewMockQuerier(ctrl)
			gw := paypal.NewMockProvider()
			svc := NewInvoiceService(mockRepo, gw, nil, nil)

			params := validCreateParams()
			tt.mutate(&params)

			invoice, err := svc.Create(ctx, params)
			assert.Nil(t, invoice)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
			assert.Empty(t, gw.CallLog)
		})
	}
}

// Test_CreateInvoice_RequiresPayPalEmail verifies creation is refused until
// the user has run setup.
func Test_CreateInvoice_RequiresPayPalEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	tests := []struct {
		name string
		user repository.User
		err  error
	}{
		{
			name: "unknown user",
			err:  pgx.ErrNoRows,
		},
		{
			name: "user without paypal email",
			user: testUser(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := repository.NewMockQuerier(ctrl)
			gw := paypal.NewMockProvider()
			svc := NewInvoiceService(mockRepo, gw, nil, nil)

			mockRepo.EXPECT().
				GetUser(ctx, "user-1", "guild-1").
				Return(tt.user, tt.err)

			invoice, err := svc.Create(ctx, validCreateParams())
			assert.Nil(t, invoice)
			assert.ErrorIs(t, err, ErrPayPalEmailNotConfigured)
			assert.Empty(t, gw.CallLog)
		})
	}
}

// Test_CreateInvoice_DraftOnlyWithoutEmail verifies that with no explicit
// email and no saved client, the invoice stays a local draft and PayPal is
// never contacted.
func Test_CreateInvoice_DraftOnlyWithoutEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := repository.NewMockQuerier(ctrl)
	gw := paypal.NewMockProvider()
	svc := NewInvoiceService(mockRepo, gw, nil, nil)

	params := validCreateParams()
	params.ClientEmail = ""

	id := newTestInvoiceID()
	row := testInvoiceRow(id, "DRAFT")
	row.ClientEmail = ""

	mockRepo.EXPECT().
		GetUser(ctx, "user-1", "guild-1").
		Return(testUser("pay@example.com"), nil)
	mockRepo.EXPECT().
		GetClient(ctx, "guild-1", "user-1", "client-1").
		Return(repository.Client{}, pgx.ErrNoRows)
	mockRepo.EXPECT().
		CreateInvoice(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, arg repository.CreateInvoiceParams) (repository.Invoice, error) {
			assert.Empty(t, arg.ClientEmail)
			assert.Equal(t, "150", arg.Amount)
			return row, nil
		})

	invoice, err := svc.Create(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	assert.Empty(t, invoice.Warning)
	assert.Empty(t, gw.CallLog)
}

// Test_CreateInvoice_SendsWhenEmailKnown verifies the full happy path and its
// ordering: local draft first, provider id persisted before the send, status
// advanced to SENT last.
func Test_CreateInvoice_SendsWhenEmailKnown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := repository.NewMockQuerier(ctrl)
	gw := paypal.NewMockProvider()
	svc := NewInvoiceService(mockRepo, gw, nil, nil)

	id := newTestInvoiceID()
	draft := testInvoiceRow(id, "DRAFT")
	withPayPal := draft
	withPayPal.PaypalInvoiceID = pgtype.Text{String: "INV2-XYZ", Valid: true}
	withPayPal.PaypalLink = "https://www.sandbox.paypal.com/invoice/p/INV2-XYZ"
	sent := withPayPal
	sent.Status = "SENT"

	var order []string
	gw.CreateInvoiceFunc = func(_ context.Context, params paypal.CreateInvoiceParams) (*paypal.Invoice, error) {
		order = append(order, "gw.create")
		assert.Equal(t, "pay@example.com", params.InvoicerEmail)
		assert.Equal(t, "client@example.com", params.RecipientEmail)
		return &paypal.Invoice{
			ID:           "INV2-XYZ",
			PayerViewURL: "https://www.sandbox.paypal.com/invoice/p/INV2-XYZ",
			Status:       "DRAFT",
		}, nil
	}
	gw.SendInvoiceFunc = func(_ context.Context, paypalInvoiceID string) error {
		order = append(order, "gw.send")
		assert.Equal(t, "INV2-XYZ", paypalInvoiceID)
		return nil
	}

	mockRepo.EXPECT().
		GetUser(ctx, "user-1", "guild-1").
		Return(testUser("pay@example.com"), nil)
	mockRepo.EXPECT().
		CreateInvoice(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ repository.CreateInvoiceParams) (repository.Invoice, error) {
			order = append(order, "db.create")
			return draft, nil
		})
	mockRepo.EXPECT().
		UpdateInvoicePayPal(ctx, repository.UpdateInvoicePayPalParams{
			ID:              id,
			PaypalInvoiceID: "INV2-XYZ",
			PaypalLink:      "https://www.sandbox.paypal.com/invoice/p/INV2-XYZ",
		}).
		DoAndReturn(func(_ context.Context, _ repository.UpdateInvoicePayPalParams) (repository.Invoice, error) {
			order = append(order, "db.paypal")
			return withPayPal, nil
		})
	mockRepo.EXPECT().
		UpdateInvoiceStatus(ctx, repository.UpdateInvoiceStatusParams{ID: id, Status: "SENT"}).
		Return(sent, nil)

	invoice, err := svc.Create(ctx, validCreateParams())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, invoice.Status)
	assert.Equal(t, "INV2-XYZ", invoice.PayPalInvoiceID)
	assert.Empty(t, invoice.Warning)
	assert.Equal(t, []string{"db.create", "gw.create", "db.paypal", "gw.send"}, order)
}

// Test_CreateInvoice_GatewayCreateFailure verifies a provider create failure
// leaves the local draft intact and surfaces as a warning, not an error.
func Test_CreateInvoice_GatewayCreateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := repository.NewMockQuerier(ctrl)
	gw := paypal.NewMockProvider()
	gw.CreateInvoiceFunc = func(context.Context, paypal.CreateInvoiceParams) (*paypal.Invoice, error) {
		return nil, errors.New("paypal is down")
	}
	svc := NewInvoiceService(mockRepo, gw, nil, nil)

	id := newTestInvoiceID()

	mockRepo.EXPECT().
		GetUser(ctx, "user-1", "guild-1").
		Return(testUser("pay@example.com"), nil)
	mockRepo.EXPECT().
		CreateInvoice(ctx, gomock.Any()).
		Return(testInvoiceRow(id, "DRAFT"), nil)

	invoice, err := svc.Create(ctx, validCreateParams())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, WarningPayPalCreateFailed, invoice.Warning)
	assert.Empty(t, invoice.PayPalInvoiceID)
}

// Test_CreateInvoice_SendFailureKeepsLink verifies the provider id and link
// are persisted before the send, so a failed send still leaves a shareable
// link behind.
func Test_CreateInvoice_SendFailureKeepsLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := repository.NewMockQuerier(ctrl)
	gw := paypal.NewMockProvider()
	gw.SendInvoiceFunc = func(context.Context, string) error {
		return errors.New("smtp on fire")
	}
	svc := NewInvoiceService(mockRepo, gw, nil, nil)

	id := newTestInvoiceID()
	withPayPal := testInvoiceRow(id, "DRAFT")
	withPayPal.PaypalInvoiceID = pgtype.Text{String: "INV2-MOCK-" + uuidString(id), Valid: true}
	withPayPal.PaypalLink = "https://www.sandbox.paypal.com/invoice/p/INV2-MOCK-" + uuidString(id)

	mockRepo.EXPECT().
		GetUser(ctx, "user-1", "guild-1").
		Return(testUser("pay@example.com"), nil)
	mockRepo.EXPECT().
		CreateInvoice(ctx, gomock.Any()).
		Return(testInvoiceRow(id, "DRAFT"), nil)
	mockRepo.EXPECT().
		UpdateInvoicePayPal(ctx, gomock.Any()).
		Return(withPayPal, nil)

	invoice, err := svc.Create(ctx, validCreateParams())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, WarningPayPalSendFailed, invoice.Warning)
	assert.NotEmpty(t, invoice.PayPalInvoiceID)
	assert.NotEmpty(t, invoice.PayPalLink)
}

// Test_CreateInvoice_UsesSavedClientEmail verifies the address book fills in
// the recipient when no explicit email is given.
func Test_CreateInvoice_UsesSavedClientEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := repository.NewMockQuerier(ctrl)
	gw := paypal.NewMockProvider()

	var recipient string
	gw.CreateInvoiceFunc = func(_ context.Context, params paypal.CreateInvoiceParams) (*paypal.Invoice, error) {
		recipient = params.RecipientEmail
		return &paypal.Invoice{ID: "INV2-AB", PayerViewURL: "https://example.com/p/INV2-AB"}, nil
	}
	svc := NewInvoiceService(mockRepo, gw, nil, nil)

	params := validCreateParams()
	params.ClientEmail = ""

	id := newTestInvoiceID()
	row := testInvoiceRow(id, "DRAFT")
	row.ClientEmail = "saved@example.com"

	mockRepo.EXPECT().
		GetUser(ctx, "user-1", "guild-1").
		Return(testUser("pay@example.com"), nil)
	mockRepo.EXPECT().
		GetClient(ctx, "guild-1", "user-1", "client-1").
		Return(repository.Client{DiscordID: "client-1", Email: "saved@example.com"}, nil)
	mockRepo.EXPECT().
		CreateInvoice(ctx, gomock.Any()).
		Return(row, nil)
	mockRepo.EXPECT().
		UpdateInvoicePayPal(ctx, gomock.Any()).
		Return(row, nil)
	mockRepo.EXPECT().
		UpdateInvoiceStatus(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ repository.UpdateInvoiceStatusParams) (repository.Invoice, error) {
			sent := row
			sent.Status = "SENT"
			return sent, nil
		})

	invoice, err := svc.Create(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "saved@example.com", recipient)
	assert.Equal(t, domain.InvoiceStatusSent, invoice.Status)
}

// Test_CancelInvoice verifies the cancel rules: paid invoices are refused,
// the remote cancel is best effort, and local status always advances.
func Test_CancelInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("paid invoice rejected", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		svc := NewInvoiceService(mockRepo, gw, nil, nil)

		id := newTestInvoiceID()
		mockRepo.EXPECT().
			GetInvoice(ctx, id).
			Return(testInvoiceRow(id, "PAID"), nil)

		invoice, err := svc.Cancel(ctx, uuidString(id))
		assert.Nil(t, invoice)
		assert.ErrorIs(t, err, ErrCannotCancelPaid)
		assert.Empty(t, gw.CallLog)
	})

	t.Run("sent invoice cancelled remotely and locally", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		svc := NewInvoiceService(mockRepo, gw, nil, nil)

		id := newTestInvoiceID()
		row := testInvoiceRow(id, "SENT")
		row.PaypalInvoiceID = pgtype.Text{String: "INV2-CC", Valid: true}
		cancelled := row
		cancelled.Status = "CANCELLED"

		mockRepo.EXPECT().GetInvoice(ctx, id).Return(row, nil)
		mockRepo.EXPECT().
			UpdateInvoiceStatus(ctx, repository.UpdateInvoiceStatusParams{ID: id, Status: "CANCELLED"}).
			Return(cancelled, nil)

		invoice, err := svc.Cancel(ctx, uuidString(id))
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusCancelled, invoice.Status)
		assert.Equal(t, []string{"CancelInvoice(INV2-CC)"}, gw.CallLog)
	})

	t.Run("remote cancel failure still cancels locally", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		gw.CancelInvoiceFunc = func(context.Context, string) error {
			return errors.New("paypal is down")
		}
		svc := NewInvoiceService(mockRepo, gw, nil, nil)

		id := newTestInvoiceID()
		row := testInvoiceRow(id, "SENT")
		row.PaypalInvoiceID = pgtype.Text{String: "INV2-DD", Valid: true}
		cancelled := row
		cancelled.Status = "CANCELLED"

		mockRepo.EXPECT().GetInvoice(ctx, id).Return(row, nil)
		mockRepo.EXPECT().UpdateInvoiceStatus(ctx, gomock.Any()).Return(cancelled, nil)

		invoice, err := svc.Cancel(ctx, uuidString(id))
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusCancelled, invoice.Status)
	})

	t.Run("draft without provider id skips remote call", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		svc := NewInvoiceService(mockRepo, gw, nil, nil)

		id := newTestInvoiceID()
		cancelled := testInvoiceRow(id, "CANCELLED")

		mockRepo.EXPECT().GetInvoice(ctx, id).Return(testInvoiceRow(id, "DRAFT"), nil)
		mockRepo.EXPECT().UpdateInvoiceStatus(ctx, gomock.Any()).Return(cancelled, nil)

		invoice, err := svc.Cancel(ctx, uuidString(id))
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusCancelled, invoice.Status)
		assert.Empty(t, gw.CallLog)
	})
}

// Test_DeleteInvoice_RemoteCleanup verifies the status-dependent provider
// cleanup before a local delete.
func Test_DeleteInvoice_RemoteCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	tests := []struct {
		name        string
		status      string
		wantCallLog []string
	}{
		{
			name:        "draft deleted remotely",
			status:      "DRAFT",
			wantCallLog: []string{"DeleteInvoice(INV2-EE)"},
		},
		{
			name:        "sent cancelled remotely",
			status:      "SENT",
			wantCallLog: []string{"CancelInvoice(INV2-EE)"},
		},
		{
			name:        "paid left alone",
			status:      "PAID",
			wantCallLog: []string{},
		},
		{
			name:        "cancelled left alone",
			status:      "CANCELLED",
			wantCallLog: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := repository.NewMockQuerier(ctrl)
			gw := paypal.NewMockProvider()
			svc := NewInvoiceService(mockRepo, gw, nil, nil)

			id := newTestInvoiceID()
			row := testInvoiceRow(id, tt.status)
			row.PaypalInvoiceID = pgtype.Text{String: "INV2-EE", Valid: true}

			mockRepo.EXPECT().GetInvoice(ctx, id).Return(row, nil)
			mockRepo.EXPECT().DeleteInvoice(ctx, id).Return(nil)

			err := svc.Delete(ctx, uuidString(id))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCallLog, gw.CallLog)
		})
	}

	t.Run("cleanup failure does not abort the delete", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		gw.CancelInvoiceFunc = func(context.Context, string) error {
			return errors.New("paypal is down")
		}
		svc := NewInvoiceService(mockRepo, gw, nil, nil)

		id := newTestInvoiceID()
		row := testInvoiceRow(id, "SENT")
		row.PaypalInvoiceID = pgtype.Text{String: "INV2-FF", Valid: true}

		mockRepo.EXPECT().GetInvoice(ctx, id).Return(row, nil)
		mockRepo.EXPECT().DeleteInvoice(ctx, id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, uuidString(id)))
	})
}

// Test_BulkDeleteInvoices verifies per-invoice cleanup runs for the whole
// batch and the returned count reflects local deletions only.
func Test_BulkDeleteInvoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("requires guild and user", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), nil, nil)

		_, err := svc.BulkDelete(ctx, domain.InvoiceFilter{GuildID: "guild-1"})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

		_, err = svc.BulkDelete(ctx, domain.InvoiceFilter{UserID: "user-1"})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("cleans up each invoice and returns the local count", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		svc := NewInvoiceService(mockRepo, gw, nil, nil)

		draft := testInvoiceRow(newTestInvoiceID(), "DRAFT")
		draft.PaypalInvoiceID = pgtype.Text{String: "INV2-D1", Valid: true}
		sent := testInvoiceRow(newTestInvoiceID(), "SENT")
		sent.PaypalInvoiceID = pgtype.Text{String: "INV2-S1", Valid: true}

		params := repository.DeleteInvoicesParams{
			GuildID: "guild-1",
			UserID:  "user-1",
		}

		mockRepo.EXPECT().
			ListInvoicesForDelete(ctx, params).
			Return([]repository.Invoice{draft, sent}, nil)
		mockRepo.EXPECT().
			DeleteInvoices(ctx, params).
			Return(int64(2), nil)

		count, err := svc.BulkDelete(ctx, domain.InvoiceFilter{GuildID: "guild-1", UserID: "user-1"})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, []string{"DeleteInvoice(INV2-D1)", "CancelInvoice(INV2-S1)"}, gw.CallLog)
	})
}

// Test_RemindInvoice verifies reminder eligibility and the payment error
// surface when the resend fails.
func Test_RemindInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("not eligible without a payment link", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), nil, nil)

		id := newTestInvoiceID()
		mockRepo.EXPECT().GetInvoice(ctx, id).Return(testInvoiceRow(id, "DRAFT"), nil)

		info, err := svc.Remind(ctx, uuidString(id))
		assert.Nil(t, info)
		assert.ErrorIs(t, err, ErrNotEligibleForReminder)
	})

	t.Run("send failure is a payment error", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		gw.SendInvoiceFunc = func(context.Context, string) error {
			return errors.New("paypal is down")
		}
		svc := NewInvoiceService(mockRepo, gw, nil, nil)

		id := newTestInvoiceID()
		row := testInvoiceRow(id, "SENT")
		row.PaypalInvoiceID = pgtype.Text{String: "INV2-GG", Valid: true}
		row.PaypalLink = "https://example.com/p/INV2-GG"

		mockRepo.EXPECT().GetInvoice(ctx, id).Return(row, nil)

		info, err := svc.Remind(ctx, uuidString(id))
		assert.Nil(t, info)
		assert.Equal(t, domain.EPAYMENT, domain.ErrorCode(err))
	})

	t.Run("resends and returns notification info", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		svc := NewInvoiceService(mockRepo, gw, nil, nil)

		id := newTestInvoiceID()
		row := testInvoiceRow(id, "SENT")
		row.PaypalInvoiceID = pgtype.Text{String: "INV2-HH", Valid: true}
		row.PaypalLink = "https://example.com/p/INV2-HH"

		mockRepo.EXPECT().GetInvoice(ctx, id).Return(row, nil)

		info, err := svc.Remind(ctx, uuidString(id))
		require.NoError(t, err)
		assert.Equal(t, "client-1", info.ClientDiscordID)
		assert.Equal(t, "https://example.com/p/INV2-HH", info.PayPalLink)
		assert.Equal(t, "150", info.Amount.String())
		assert.Equal(t, []string{"SendInvoice(INV2-HH)"}, gw.CallLog)
	})
}

// Test_MarkPaidByPayPalID verifies the idempotent paid transition: a fresh
// transition reports Changed, a duplicate event does not, and an unknown
// provider id yields no invoice at all.
func Test_MarkPaidByPayPalID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("marks an open invoice paid", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), nil, nil)

		id := newTestInvoiceID()
		paid := testInvoiceRow(id, "PAID")
		paid.PaidAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

		mockRepo.EXPECT().
			MarkInvoicePaid(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg repository.MarkInvoicePaidParams) (repository.Invoice, error) {
				assert.Equal(t, "INV2-II", arg.PaypalInvoiceID)
				assert.True(t, arg.PaidAt.Valid)
				return paid, nil
			})

		result, err := svc.MarkPaidByPayPalID(ctx, "INV2-II")
		require.NoError(t, err)
		assert.True(t, result.Changed)
		require.NotNil(t, result.Invoice)
		assert.Equal(t, domain.InvoiceStatusPaid, result.Invoice.Status)
		assert.NotNil(t, result.Invoice.PaidAt)
	})

	t.Run("duplicate event is a no-op", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), nil, nil)

		id := newTestInvoiceID()
		paid := testInvoiceRow(id, "PAID")

		mockRepo.EXPECT().
			MarkInvoicePaid(ctx, gomock.Any()).
			Return(repository.Invoice{}, pgx.ErrNoRows)
		mockRepo.EXPECT().
			GetInvoiceByPayPalID(ctx, "INV2-JJ").
			Return(paid, nil)

		result, err := svc.MarkPaidByPayPalID(ctx, "INV2-JJ")
		require.NoError(t, err)
		assert.False(t, result.Changed)
		require.NotNil(t, result.Invoice)
		assert.Equal(t, domain.InvoiceStatusPaid, result.Invoice.Status)
	})

	t.Run("unknown provider id", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), nil, nil)

		mockRepo.EXPECT().
			MarkInvoicePaid(ctx, gomock.Any()).
			Return(repository.Invoice{}, pgx.ErrNoRows)
		mockRepo.EXPECT().
			GetInvoiceByPayPalID(ctx, "INV2-KK").
			Return(repository.Invoice{}, pgx.ErrNoRows)

		result, err := svc.MarkPaidByPayPalID(ctx, "INV2-KK")
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Nil(t, result.Invoice)
	})
}

func Test_CancelByPayPalID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := repository.NewMockQuerier(ctrl)
	svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), nil, nil)

	mockRepo.EXPECT().
		MarkInvoicesCancelledByPayPalID(ctx, "INV2-LL").
		Return(int64(1), nil)

	count, err := svc.CancelByPayPalID(ctx, "INV2-LL")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// Test_CancelOverdue_IsolatesFailures verifies one bad invoice does not
// poison the rest of the sweep.
func Test_CancelOverdue_IsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := repository.NewMockQuerier(ctrl)
	gw := paypal.NewMockProvider()
	svc := NewInvoiceService(mockRepo, gw, nil, nil)

	cutoff := time.Now().AddDate(0, 0, -60)

	good := testInvoiceRow(newTestInvoiceID(), "SENT")
	good.PaypalInvoiceID = pgtype.Text{String: "INV2-MM", Valid: true}
	bad := testInvoiceRow(newTestInvoiceID(), "SENT")

	goodCancelled := good
	goodCancelled.Status = "CANCELLED"

	mockRepo.EXPECT().
		ListStaleSentInvoices(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true}).
		Return([]repository.Invoice{good, bad}, nil)

	mockRepo.EXPECT().GetInvoice(ctx, good.ID).Return(good, nil)
	mockRepo.EXPECT().
		UpdateInvoiceStatus(ctx, repository.UpdateInvoiceStatusParams{ID: good.ID, Status: "CANCELLED"}).
		Return(goodCancelled, nil)

	// The second invoice vanished between listing and cancelling.
	mockRepo.EXPECT().GetInvoice(ctx, bad.ID).Return(repository.Invoice{}, pgx.ErrNoRows)

	count, err := svc.CancelOverdue(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"CancelInvoice(INV2-MM)"}, gw.CallLog)
}

// Test_Stats_AggregatesByCurrency verifies the per-status counters, the
// cross-currency totals, and that every seen currency gets an entry even
// when it contributes no amounts.
func Test_Stats_AggregatesByCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := repository.NewMockQuerier(ctrl)
	svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), nil, nil)

	row := func(status, amount, currency string) repository.Invoice {
		r := testInvoiceRow(newTestInvoiceID(), status)
		r.Amount = amount
		r.Currency = currency
		return r
	}

	mockRepo.EXPECT().
		ListInvoicesForUser(ctx, repository.ListInvoicesForUserParams{
			UserID:  "user-1",
			GuildID: pgtype.Text{String: "guild-1", Valid: true},
		}).
		Return([]repository.Invoice{
			row("DRAFT", "10.00", "USD"),
			row("SENT", "150.00", "USD"),
			row("PAID", "200.00", "USD"),
			row("SENT", "75.00", "EUR"),
			row("CANCELLED", "50.00", "GBP"),
		}, nil)

	stats, err := svc.Stats(ctx, "user-1", "guild-1")
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Draft)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 1, stats.Paid)
	assert.Equal(t, 1, stats.Cancelled)

	assert.Equal(t, "425", stats.TotalInvoiced.String())
	assert.Equal(t, "200", stats.TotalPaid.String())
	assert.Equal(t, "225", stats.TotalPending.String())

	require.Contains(t, stats.Currencies, "USD")
	assert.Equal(t, "350", stats.Currencies["USD"].Invoiced.String())
	assert.Equal(t, "200", stats.Currencies["USD"].Paid.String())
	assert.Equal(t, "150", stats.Currencies["USD"].Pending.String())

	require.Contains(t, stats.Currencies, "EUR")
	assert.Equal(t, "75", stats.Currencies["EUR"].Invoiced.String())

	// Cancelled invoices still register their currency.
	require.Contains(t, stats.Currencies, "GBP")
	assert.Equal(t, "0", stats.Currencies["GBP"].Invoiced.String())
}

// Test_ListInvoices verifies the guild requirement and the limit clamp.
func Test_ListInvoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("requires a guild", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), nil, nil)

		_, err := svc.List(ctx, domain.InvoiceFilter{}, 10)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("clamps the limit", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), nil, nil)

		mockRepo.EXPECT().
			ListInvoices(ctx, repository.ListInvoicesParams{
				GuildID: "guild-1",
				Status:  pgtype.Text{String: "SENT", Valid: true},
				Limit:   50,
			}).
			Return([]repository.Invoice{testInvoiceRow(newTestInvoiceID(), "SENT")}, nil)

		items, err := svc.List(ctx, domain.InvoiceFilter{GuildID: "guild-1", Status: domain.InvoiceStatusSent}, 500)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

// Test_CancelOverdue_StalenessBoundary verifies the cutoff comparison is
// strict: an invoice created exactly at the threshold survives, one created
// a moment earlier is cancelled.
func Test_CancelOverdue_StalenessBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockRepo := repository.NewMockQuerier(ctrl)
	gw := paypal.NewMockProvider()
	svc := NewInvoiceService(mockRepo, gw, nil, nil)

	cutoff := time.Now().AddDate(0, 0, -60)

	rowAt := func(createdAt time.Time) repository.Invoice {
		r := testInvoiceRow(newTestInvoiceID(), "SENT")
		r.CreatedAt = pgtype.Timestamptz{Time: createdAt, Valid: true}
		return r
	}
	past := rowAt(cutoff.Add(-time.Second))
	at := rowAt(cutoff)
	fresh := rowAt(cutoff.Add(time.Second))
	seeded := []repository.Invoice{past, at, fresh}

	// Apply the store's created_at < cutoff predicate to the seeded set.
	mockRepo.EXPECT().
		ListStaleSentInvoices(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, arg pgtype.Timestamptz) ([]repository.Invoice, error) {
			var stale []repository.Invoice
			for _, r := range seeded {
				if r.CreatedAt.Time.Before(arg.Time) {
					stale = append(stale, r)
				}
			}
			return stale, nil
		})

	cancelledIDs := map[pgtype.UUID]bool{}
	mockRepo.EXPECT().
		GetInvoice(ctx, past.ID).
		Return(past, nil)
	mockRepo.EXPECT().
		UpdateInvoiceStatus(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, arg repository.UpdateInvoiceStatusParams) (repository.Invoice, error) {
			cancelledIDs[arg.ID] = true
			done := past
			done.Status = "CANCELLED"
			return done, nil
		})

	count, err := svc.CancelOverdue(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, cancelledIDs[past.ID])
	assert.False(t, cancelledIDs[at.ID], "invoice created exactly at the threshold must survive")
	assert.False(t, cancelledIDs[fresh.ID])
}

// Test_InvoiceMetrics_Recorded verifies the lifecycle counters move with the
// operations they describe.
func Test_InvoiceMetrics_Recorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	metrics := telemetry.NewBusinessMetrics("payme_service_test")

	created := func() float64 { return testutil.ToFloat64(metrics.InvoicesCreated.WithLabelValues("USD")) }
	sent := func() float64 { return testutil.ToFloat64(metrics.InvoicesSent) }
	warned := func() float64 { return testutil.ToFloat64(metrics.InvoiceWarnings.WithLabelValues("send_failed")) }
	deleted := func() float64 { return testutil.ToFloat64(metrics.InvoicesDeleted) }

	t.Run("create and send", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		svc := NewInvoiceService(mockRepo, gw, metrics, nil)

		id := newTestInvoiceID()
		row := testInvoiceRow(id, "DRAFT")
		sentRow := row
		sentRow.Status = "SENT"

		mockRepo.EXPECT().GetUser(ctx, "user-1", "guild-1").Return(testUser("pay@example.com"), nil)
		mockRepo.EXPECT().CreateInvoice(ctx, gomock.Any()).Return(row, nil)
		mockRepo.EXPECT().UpdateInvoicePayPal(ctx, gomock.Any()).Return(row, nil)
		mockRepo.EXPECT().UpdateInvoiceStatus(ctx, gomock.Any()).Return(sentRow, nil)

		_, err := svc.Create(ctx, validCreateParams())
		require.NoError(t, err)

		assert.Equal(t, 1.0, created())
		assert.Equal(t, 1.0, sent())
		assert.Equal(t, 1, testutil.CollectAndCount(metrics.InvoiceAmount))
	})

	t.Run("send failure counts a warning", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		gw := paypal.NewMockProvider()
		gw.SendInvoiceFunc = func(context.Context, string) error {
			return errors.New("smtp on fire")
		}
		svc := NewInvoiceService(mockRepo, gw, metrics, nil)

		id := newTestInvoiceID()
		row := testInvoiceRow(id, "DRAFT")

		mockRepo.EXPECT().GetUser(ctx, "user-1", "guild-1").Return(testUser("pay@example.com"), nil)
		mockRepo.EXPECT().CreateInvoice(ctx, gomock.Any()).Return(row, nil)
		mockRepo.EXPECT().UpdateInvoicePayPal(ctx, gomock.Any()).Return(row, nil)

		invoice, err := svc.Create(ctx, validCreateParams())
		require.NoError(t, err)
		assert.Equal(t, WarningPayPalSendFailed, invoice.Warning)

		assert.Equal(t, 2.0, created())
		assert.Equal(t, 1.0, sent(), "a failed send must not count as sent")
		assert.Equal(t, 1.0, warned())
	})

	t.Run("delete", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewInvoiceService(mockRepo, paypal.NewMockProvider(), metrics, nil)

		id := newTestInvoiceID()
		mockRepo.EXPECT().GetInvoice(ctx, id).Return(testInvoiceRow(id, "DRAFT"), nil)
		mockRepo.EXPECT().DeleteInvoice(ctx, id).Return(nil)

		require.NoError(t, svc.Delete(ctx, uuidString(id)))
		assert.Equal(t, 1.0, deleted())
	})
}
