package service

import (
	"fmt"
	"time"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/repository"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// pgUUID parses a string into a pgtype.UUID.
func pgUUID(s string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(s); err != nil {
		return id, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	v, _ := id.Value()
	s, _ := v.(string)
	return s
}

// pgText returns a NULL pgtype.Text for "", otherwise the value. Used for
// optional query filters.
func pgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func textString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

func toDomainInvoice(row repository.Invoice) (*domain.Invoice, error) {
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", row.Amount, err)
	}

	return &domain.Invoice{
		ID:              uuidString(row.ID),
		UserID:          row.UserID,
		GuildID:         row.GuildID,
		ClientDiscordID: row.ClientDiscordID,
		ClientEmail:     row.ClientEmail,
		Amount:          amount,
		Currency:        row.Currency,
		Description:     row.Description,
		Status:          domain.InvoiceStatus(row.Status),
		PayPalInvoiceID: textString(row.PaypalInvoiceID),
		PayPalLink:      row.PaypalLink,
		CreatedAt:       row.CreatedAt.Time,
		PaidAt:          timePtr(row.PaidAt),
	}, nil
}

func toDomainInvoices(rows []repository.Invoice) ([]domain.Invoice, error) {
	items := make([]domain.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := toDomainInvoice(row)
		if err != nil {
			return nil, err
		}
		items = append(items, *inv)
	}
	return items, nil
}

func toDomainUser(row repository.User) *domain.User {
	return &domain.User{
		ID:               row.ID,
		GuildID:          row.GuildID,
		Email:            row.Email,
		PayPalEmail:      row.PaypalEmail,
		PayPalMeUsername: row.PaypalMeUsername,
		Currency:         row.Currency,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}

func toDomainGuild(row repository.Guild) *domain.Guild {
	return &domain.Guild{
		ID:         row.ID,
		Name:       row.Name,
		WebhookURL: row.WebhookUrl,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}

func toDomainClient(row repository.Client) *domain.Client {
	return &domain.Client{
		ID:        uuidString(row.ID),
		UserID:    row.UserID,
		GuildID:   row.GuildID,
		DiscordID: row.DiscordID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func toDomainTemplate(row repository.Template) (*domain.Template, error) {
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", row.Amount, err)
	}

	return &domain.Template{
		ID:          uuidString(row.ID),
		UserID:      row.UserID,
		GuildID:     row.GuildID,
		Name:        row.Name,
		Amount:      amount,
		Currency:    row.Currency,
		Description: row.Description,
		CreatedAt:   row.CreatedAt.Time,
	}, nil
}
