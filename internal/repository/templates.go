package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const templateColumns = `id, user_id, guild_id, name, amount::text, currency, description, created_at`

func scanTemplate(row pgx.Row) (Template, error) {
	var t Template
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.GuildID,
		&t.Name,
		&t.Amount,
		&t.Currency,
		&t.Description,
		&t.CreatedAt,
	)
	return t, err
}

const createTemplate = `
INSERT INTO templates (id, user_id, guild_id, name, amount, currency, description)
VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
RETURNING ` + templateColumns

type CreateTemplateParams struct {
	ID          pgtype.UUID
	UserID      string
	GuildID     string
	Name        string
	Amount      string
	Currency    string
	Description string
}

// CreateTemplate inserts a named invoice preset. The (user, guild, name)
// unique constraint surfaces duplicates as a pg error.
func (q *Queries) CreateTemplate(ctx context.Context, arg CreateTemplateParams) (Template, error) {
	row := q.db.QueryRow(ctx, createTemplate,
		arg.ID,
		arg.UserID,
		arg.GuildID,
		arg.Name,
		arg.Amount,
		arg.Currency,
		arg.Description,
	)
	return scanTemplate(row)
}

const listTemplates = `
SELECT ` + templateColumns + ` FROM templates
WHERE guild_id = $1 AND user_id = $2
ORDER BY created_at DESC`

func (q *Queries) ListTemplates(ctx context.Context, guildID, userID string) ([]Template, error) {
	rows, err := q.db.Query(ctx, listTemplates, guildID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const getTemplateByName = `
SELECT ` + templateColumns + ` FROM templates
WHERE guild_id = $1 AND user_id = $2 AND name = $3`

func (q *Queries) GetTemplateByName(ctx context.Context, guildID, userID, name string) (Template, error) {
	return scanTemplate(q.db.QueryRow(ctx, getTemplateByName, guildID, userID, name))
}

const deleteTemplate = `
DELETE FROM templates WHERE id = $1`

// DeleteTemplate removes a template and reports whether a row was deleted.
func (q *Queries) DeleteTemplate(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteTemplate, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
