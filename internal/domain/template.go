package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Template is a reusable invoice preset, unique per (name, user, guild).
type Template struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	GuildID     string          `json:"guildId"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateTemplateParams creates a named invoice preset.
type CreateTemplateParams struct {
	UserID      string
	GuildID     string
	Name        string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// TemplateService manages invoice templates.
type TemplateService interface {
	Create(ctx context.Context, params CreateTemplateParams) (*Template, error)
	List(ctx context.Context, guildID, userID string) ([]Template, error)
	GetByName(ctx context.Context, guildID, userID, name string) (*Template, error)
	Delete(ctx context.Context, id string) error
}
