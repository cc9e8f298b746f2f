package domain

import (
	"context"
	"time"
)

// User is a Discord user's invoicing profile within one guild. The same
// user can hold different PayPal settings per guild. PayPalEmail must be
// set before the user can create invoices.
type User struct {
	ID               string    `json:"id"`
	GuildID          string    `json:"guildId"`
	Email            string    `json:"email,omitempty"`
	PayPalEmail      string    `json:"paypalEmail,omitempty"`
	PayPalMeUsername string    `json:"paypalMeUsername,omitempty"`
	Currency         string    `json:"currency"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// UpsertUserParams registers or updates a user profile. Empty optional
// fields leave the stored value untouched on update.
type UpsertUserParams struct {
	ID               string
	GuildID          string
	Email            string
	PayPalEmail      string
	PayPalMeUsername string
	Currency         string
}

// UserService manages per-guild user profiles.
type UserService interface {
	Upsert(ctx context.Context, params UpsertUserParams) (*User, error)
	Get(ctx context.Context, id, guildID string) (*User, error)
	Update(ctx context.Context, params UpsertUserParams) (*User, error)
}
