package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type templateService struct {
	repo   repository.Querier
	logger *slog.Logger
}

var _ domain.TemplateService = (*templateService)(nil)

// NewTemplateService creates an invoice preset service.
func NewTemplateService(repo repository.Querier, logger *slog.Logger) domain.TemplateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &templateService{repo: repo, logger: logger}
}

func (s *templateService) Create(ctx context.Context, params domain.CreateTemplateParams) (*domain.Template, error) {
	const op = "template.create"

	switch {
	case params.UserID == "":
		return nil, domain.Invalid(op, "User ID is required")
	case params.GuildID == "":
		return nil, domain.Invalid(op, "Guild ID is required")
	case params.Name == "" || len(params.Name) > 100:
		return nil, domain.Invalid(op, "Name is required and must be at most 100 characters")
	case !params.Amount.IsPositive():
		return nil, domain.Invalid(op, "Amount must be positive")
	case params.Amount.GreaterThan(maxInvoiceAmount):
		return nil, domain.Invalid(op, "Amount too large")
	case params.Description == "" || len(params.Description) > 500:
		return nil, domain.Invalid(op, "Description is required and must be at most 500 characters")
	}

	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, domain.Invalid(op, "Currency must be a 3-letter code")
	}

	id, err := pgUUID(uuid.NewString())
	if err != nil {
		return nil, domain.Internal(err, op, "failed to generate id")
	}

	row, err := s.repo.CreateTemplate(ctx, repository.CreateTemplateParams{
		ID:          id,
		UserID:      params.UserID,
		GuildID:     params.GuildID,
		Name:        params.Name,
		Amount:      params.Amount.String(),
		Currency:    currency,
		Description: params.Description,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrTemplateNameTaken
		}
		return nil, domain.Internal(err, op, "failed to create template")
	}

	return toDomainTemplate(row)
}

func (s *templateService) List(ctx context.Context, guildID, userID string) ([]domain.Template, error) {
	rows, err := s.repo.ListTemplates(ctx, guildID, userID)
	if err != nil {
		return nil, domain.Internal(err, "template.list", "failed to list templates")
	}

	items := make([]domain.Template, 0, len(rows))
	for _, row := range rows {
		t, err := toDomainTemplate(row)
		if err != nil {
			return nil, domain.Internal(err, "template.list", "failed to read template")
		}
		items = append(items, *t)
	}
	return items, nil
}

func (s *templateService) GetByName(ctx context.Context, guildID, userID, name string) (*domain.Template, error) {
	row, err := s.repo.GetTemplateByName(ctx, guildID, userID, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, domain.Internal(err, "template.get", "failed to get template")
	}
	return toDomainTemplate(row)
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	uid, err := pgUUID(id)
	if err != nil {
		return ErrTemplateNotFound
	}

	count, err := s.repo.DeleteTemplate(ctx, uid)
	if err != nil {
		return domain.Internal(err, "template.delete", "failed to delete template")
	}
	if count == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
