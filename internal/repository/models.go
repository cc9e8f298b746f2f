package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// User is a Discord user's billing profile within one guild. The ID is
// a Discord snowflake, stored as text; the same user can hold different
// settings in different guilds.
type User struct {
	ID               string
	GuildID          string
	Email            string
	PaypalEmail      string
	PaypalMeUsername string
	Currency         string
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

// Guild is a Discord server where the bot is installed.
type Guild struct {
	ID         string
	Name       string
	WebhookUrl string
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

// Client is a saved billing contact, unique per (user, guild, discord id).
type Client struct {
	ID        pgtype.UUID
	UserID    string
	GuildID   string
	DiscordID string
	Name      string
	Email     string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// Template is a reusable invoice preset. Amount is the text rendering of a
// NUMERIC(12,2) column.
type Template struct {
	ID          pgtype.UUID
	UserID      string
	GuildID     string
	Name        string
	Amount      string
	Currency    string
	Description string
	CreatedAt   pgtype.Timestamptz
}

// Invoice is a billing request tracked through its lifecycle. Amount is the
// text rendering of a NUMERIC(12,2) column. PaypalInvoiceID is null until the
// invoice has been created at the provider.
type Invoice struct {
	ID              pgtype.UUID
	UserID          string
	GuildID         string
	ClientDiscordID string
	ClientEmail     string
	Amount          string
	Currency        string
	Description     string
	Status          string
	PaypalInvoiceID pgtype.Text
	PaypalLink      string
	CreatedAt       pgtype.Timestamptz
	PaidAt          pgtype.Timestamptz
}
