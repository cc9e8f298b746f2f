package domain

import (
	"context"
	"time"
)

// Guild is a Discord server. WebhookURL, when set, receives payment
// notifications from the webhook reconciler.
type Guild struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	WebhookURL string    `json:"webhookUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpsertGuildParams registers or updates a guild.
type UpsertGuildParams struct {
	ID         string
	Name       string
	WebhookURL string
}

// GuildService manages guild records.
type GuildService interface {
	Upsert(ctx context.Context, params UpsertGuildParams) (*Guild, error)
	Get(ctx context.Context, id string) (*Guild, error)
	UpdateWebhook(ctx context.Context, id, webhookURL string) (*Guild, error)
}
