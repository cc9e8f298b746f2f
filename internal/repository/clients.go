package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const clientColumns = `id, user_id, guild_id, discord_id, name, email, created_at, updated_at`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.GuildID,
		&c.DiscordID,
		&c.Name,
		&c.Email,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

const upsertClient = `
INSERT INTO clients (id, user_id, guild_id, discord_id, name, email)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, guild_id, discord_id) DO UPDATE
SET name = EXCLUDED.name,
    email = EXCLUDED.email,
    updated_at = now()
RETURNING ` + clientColumns

type UpsertClientParams struct {
	ID        pgtype.UUID
	UserID    string
	GuildID   string
	DiscordID string
	Name      string
	Email     string
}

// UpsertClient saves a billing contact or refreshes its name and email.
func (q *Queries) UpsertClient(ctx context.Context, arg UpsertClientParams) (Client, error) {
	row := q.db.QueryRow(ctx, upsertClient,
		arg.ID,
		arg.UserID,
		arg.GuildID,
		arg.DiscordID,
		arg.Name,
		arg.Email,
	)
	return scanClient(row)
}

const listClients = `
SELECT ` + clientColumns + ` FROM clients
WHERE guild_id = $1 AND user_id = $2
ORDER BY name ASC`

func (q *Queries) ListClients(ctx context.Context, guildID, userID string) ([]Client, error) {
	rows, err := q.db.Query(ctx, listClients, guildID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const getClient = `
SELECT ` + clientColumns + ` FROM clients
WHERE guild_id = $1 AND user_id = $2 AND discord_id = $3`

func (q *Queries) GetClient(ctx context.Context, guildID, userID, discordID string) (Client, error) {
	return scanClient(q.db.QueryRow(ctx, getClient, guildID, userID, discordID))
}

const deleteClient = `
DELETE FROM clients
WHERE guild_id = $1 AND user_id = $2 AND discord_id = $3`

// DeleteClient removes a saved contact and reports whether a row was deleted.
func (q *Queries) DeleteClient(ctx context.Context, guildID, userID, discordID string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteClient, guildID, userID, discordID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
