package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, guild_id, email, paypal_email, paypal_me_username, currency, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.GuildID,
		&u.Email,
		&u.PaypalEmail,
		&u.PaypalMeUsername,
		&u.Currency,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const upsertUser = `
INSERT INTO users (id, guild_id, email, paypal_email, paypal_me_username, currency)
VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, ''), 'USD'))
ON CONFLICT (id, guild_id) DO UPDATE
SET email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email),
    paypal_email = COALESCE(NULLIF(EXCLUDED.paypal_email, ''), users.paypal_email),
    paypal_me_username = COALESCE(NULLIF(EXCLUDED.paypal_me_username, ''), users.paypal_me_username),
    currency = COALESCE(NULLIF(EXCLUDED.currency, ''), users.currency),
    updated_at = now()
RETURNING ` + userColumns

type UpsertUserParams struct {
	ID               string
	GuildID          string
	Email            string
	PaypalEmail      string
	PaypalMeUsername string
	Currency         string
}

// UpsertUser registers a Discord user's profile in a guild or updates
// their billing settings. Empty optional fields leave the stored values
// untouched.
func (q *Queries) UpsertUser(ctx context.Context, arg UpsertUserParams) (User, error) {
	row := q.db.QueryRow(ctx, upsertUser,
		arg.ID,
		arg.GuildID,
		arg.Email,
		arg.PaypalEmail,
		arg.PaypalMeUsername,
		arg.Currency,
	)
	return scanUser(row)
}

const getUser = `
SELECT ` + userColumns + ` FROM users WHERE id = $1 AND guild_id = $2`

// GetUser loads a user's profile for one guild.
func (q *Queries) GetUser(ctx context.Context, id, guildID string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUser, id, guildID))
}

const updateUser = `
UPDATE users
SET email = COALESCE($3, email),
    paypal_email = COALESCE($4, paypal_email),
    paypal_me_username = COALESCE($5, paypal_me_username),
    currency = COALESCE($6, currency),
    updated_at = now()
WHERE id = $1 AND guild_id = $2
RETURNING ` + userColumns

type UpdateUserParams struct {
	ID               string
	GuildID          string
	Email            *string
	PaypalEmail      *string
	PaypalMeUsername *string
	Currency         *string
}

// UpdateUser patches only the fields that are set.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUser,
		arg.ID,
		arg.GuildID,
		arg.Email,
		arg.PaypalEmail,
		arg.PaypalMeUsername,
		arg.Currency,
	)
	return scanUser(row)
}
