package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the storage interface implemented by Queries. Services depend on
// this interface so tests can substitute a mock.
type Querier interface {
	// Invoices
	CreateInvoice(ctx context.Context, arg CreateInvoiceParams) (Invoice, error)
	GetInvoice(ctx context.Context, id pgtype.UUID) (Invoice, error)
	GetInvoiceByPayPalID(ctx context.Context, paypalInvoiceID string) (Invoice, error)
	ListInvoices(ctx context.Context, arg ListInvoicesParams) ([]Invoice, error)
	UpdateInvoicePayPal(ctx context.Context, arg UpdateInvoicePayPalParams) (Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, arg UpdateInvoiceStatusParams) (Invoice, error)
	MarkInvoicePaid(ctx context.Context, arg MarkInvoicePaidParams) (Invoice, error)
	MarkInvoicesCancelledByPayPalID(ctx context.Context, paypalInvoiceID string) (int64, error)
	DeleteInvoice(ctx context.Context, id pgtype.UUID) error
	ListInvoicesForDelete(ctx context.Context, arg DeleteInvoicesParams) ([]Invoice, error)
	DeleteInvoices(ctx context.Context, arg DeleteInvoicesParams) (int64, error)
	ListStaleSentInvoices(ctx context.Context, cutoff pgtype.Timestamptz) ([]Invoice, error)
	ListInvoicesForUser(ctx context.Context, arg ListInvoicesForUserParams) ([]Invoice, error)

	// Users
	UpsertUser(ctx context.Context, arg UpsertUserParams) (User, error)
	GetUser(ctx context.Context, id, guildID string) (User, error)
	UpdateUser(ctx context.Context, arg UpdateUserParams) (User, error)

	// Guilds
	UpsertGuild(ctx context.Context, arg UpsertGuildParams) (Guild, error)
	GetGuild(ctx context.Context, id string) (Guild, error)
	UpdateGuildWebhook(ctx context.Context, arg UpdateGuildWebhookParams) (Guild, error)

	// Clients
	UpsertClient(ctx context.Context, arg UpsertClientParams) (Client, error)
	ListClients(ctx context.Context, guildID, userID string) ([]Client, error)
	GetClient(ctx context.Context, guildID, userID, discordID string) (Client, error)
	DeleteClient(ctx context.Context, guildID, userID, discordID string) (int64, error)

	// Templates
	CreateTemplate(ctx context.Context, arg CreateTemplateParams) (Template, error)
	ListTemplates(ctx context.Context, guildID, userID string) ([]Template, error)
	GetTemplateByName(ctx context.Context, guildID, userID, name string) (Template, error)
	DeleteTemplate(ctx context.Context, id pgtype.UUID) (int64, error)
}

var _ Querier = (*Queries)(nil)
