package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const guildColumns = `id, name, webhook_url, created_at, updated_at`

func scanGuild(row pgx.Row) (Guild, error) {
	var g Guild
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.WebhookUrl,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

const upsertGuild = `
INSERT INTO guilds (id, name, webhook_url)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    webhook_url = COALESCE(NULLIF(EXCLUDED.webhook_url, ''), guilds.webhook_url),
    updated_at = now()
RETURNING ` + guildColumns

type UpsertGuildParams struct {
	ID         string
	Name       string
	WebhookUrl string
}

// UpsertGuild registers a Discord guild or refreshes its name. An empty
// webhook URL leaves the stored one untouched.
func (q *Queries) UpsertGuild(ctx context.Context, arg UpsertGuildParams) (Guild, error) {
	row := q.db.QueryRow(ctx, upsertGuild, arg.ID, arg.Name, arg.WebhookUrl)
	return scanGuild(row)
}

const getGuild = `
SELECT ` + guildColumns + ` FROM guilds WHERE id = $1`

func (q *Queries) GetGuild(ctx context.Context, id string) (Guild, error) {
	return scanGuild(q.db.QueryRow(ctx, getGuild, id))
}

const updateGuildWebhook = `
UPDATE guilds SET webhook_url = $2, updated_at = now()
WHERE id = $1
RETURNING ` + guildColumns

type UpdateGuildWebhookParams struct {
	ID         string
	WebhookUrl string
}

func (q *Queries) UpdateGuildWebhook(ctx context.Context, arg UpdateGuildWebhookParams) (Guild, error) {
	row := q.db.QueryRow(ctx, updateGuildWebhook, arg.ID, arg.WebhookUrl)
	return scanGuild(row)
}
