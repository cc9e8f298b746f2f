package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/repository"
	"github.com/jackc/pgx/v5"
)

const discordWebhookPrefix = "https://discord.com/api/webhooks/"

type guildService struct {
	repo   repository.Querier
	logger *slog.Logger
}

var _ domain.GuildService = (*guildService)(nil)

// NewGuildService creates a guild registry service.
func NewGuildService(repo repository.Querier, logger *slog.Logger) domain.GuildService {
	if logger == nil {
		logger = slog.Default()
	}
	return &guildService{repo: repo, logger: logger}
}

func validateWebhookURL(op, webhookURL string) error {
	if webhookURL != "" && !strings.HasPrefix(webhookURL, discordWebhookPrefix) {
		return domain.Invalid(op, "Must be a Discord webhook URL")
	}
	return nil
}

func (s *guildService) Upsert(ctx context.Context, params domain.UpsertGuildParams) (*domain.Guild, error) {
	const op = "guild.upsert"

	if params.ID == "" {
		return nil, domain.Invalid(op, "Guild ID is required")
	}
	if params.Name == "" {
		return nil, domain.Invalid(op, "Guild name is required")
	}
	if err := validateWebhookURL(op, params.WebhookURL); err != nil {
		return nil, err
	}

	row, err := s.repo.UpsertGuild(ctx, repository.UpsertGuildParams{
		ID:         params.ID,
		Name:       params.Name,
		WebhookUrl: params.WebhookURL,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to upsert guild")
	}

	return toDomainGuild(row), nil
}

func (s *guildService) Get(ctx context.Context, id string) (*domain.Guild, error) {
	row, err := s.repo.GetGuild(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGuildNotFound
		}
		return nil, domain.Internal(err, "guild.get", "failed to get guild")
	}
	return toDomainGuild(row), nil
}

func (s *guildService) UpdateWebhook(ctx context.Context, id, webhookURL string) (*domain.Guild, error) {
	const op = "guild.update_webhook"

	if webhookURL == "" {
		return nil, domain.Invalid(op, "Webhook URL is required")
	}
	if err := validateWebhookURL(op, webhookURL); err != nil {
		return nil, err
	}

	row, err := s.repo.UpdateGuildWebhook(ctx, repository.UpdateGuildWebhookParams{
		ID:         id,
		WebhookUrl: webhookURL,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGuildNotFound
		}
		return nil, domain.Internal(err, op, "failed to update guild webhook")
	}

	return toDomainGuild(row), nil
}
