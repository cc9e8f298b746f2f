package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type clientService struct {
	repo   repository.Querier
	logger *slog.Logger
}

var _ domain.ClientService = (*clientService)(nil)

// NewClientService creates an address-book service for saved billing contacts.
func NewClientService(repo repository.Querier, logger *slog.Logger) domain.ClientService {
	if logger == nil {
		logger = slog.Default()
	}
	return &clientService{repo: repo, logger: logger}
}

func (s *clientService) Upsert(ctx context.Context, params domain.UpsertClientParams) (*domain.Client, error) {
	const op = "client.upsert"

	switch {
	case params.UserID == "":
		return nil, domain.Invalid(op, "User ID is required")
	case params.GuildID == "":
		return nil, domain.Invalid(op, "Guild ID is required")
	case params.DiscordID == "":
		return nil, domain.Invalid(op, "Discord ID is required")
	case params.Name == "":
		return nil, domain.Invalid(op, "Name is required")
	}
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return nil, domain.Invalid(op, "Invalid email address")
	}

	id, err := pgUUID(uuid.NewString())
	if err != nil {
		return nil, domain.Internal(err, op, "failed to generate id")
	}

	row, err := s.repo.UpsertClient(ctx, repository.UpsertClientParams{
		ID:        id,
		UserID:    params.UserID,
		GuildID:   params.GuildID,
		DiscordID: params.DiscordID,
		Name:      params.Name,
		Email:     params.Email,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to save client")
	}

	return toDomainClient(row), nil
}

func (s *clientService) List(ctx context.Context, guildID, userID string) ([]domain.Client, error) {
	rows, err := s.repo.ListClients(ctx, guildID, userID)
	if err != nil {
		return nil, domain.Internal(err, "client.list", "failed to list clients")
	}

	items := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		items = append(items, *toDomainClient(row))
	}
	return items, nil
}

func (s *clientService) Get(ctx context.Context, guildID, userID, discordID string) (*domain.Client, error) {
	row, err := s.repo.GetClient(ctx, guildID, userID, discordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, domain.Internal(err, "client.get", "failed to get client")
	}
	return toDomainClient(row), nil
}

func (s *clientService) Delete(ctx context.Context, guildID, userID, discordID string) error {
	count, err := s.repo.DeleteClient(ctx, guildID, userID, discordID)
	if err != nil {
		return domain.Internal(err, "client.delete", "failed to delete client")
	}
	if count == 0 {
		return ErrClientNotFound
	}
	return nil
}
