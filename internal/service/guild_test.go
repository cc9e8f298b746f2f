package service

import (
	"context"
	"testing"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_UpsertGuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("rejects non-discord webhook url", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewGuildService(mockRepo, nil)

		guild, err := svc.Upsert(ctx, domain.UpsertGuildParams{
			ID:         "guild-1",
			Name:       "Freelance Hub",
			WebhookURL: "https://evil.example.com/hook",
		})
		assert.Nil(t, guild)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("requires id and name", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewGuildService(mockRepo, nil)

		_, err := svc.Upsert(ctx, domain.UpsertGuildParams{Name: "Freelance Hub"})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

		_, err = svc.Upsert(ctx, domain.UpsertGuildParams{ID: "guild-1"})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("saves with valid webhook", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewGuildService(mockRepo, nil)

		webhook := "https://discord.com/api/webhooks/123/abc"
		mockRepo.EXPECT().
			UpsertGuild(ctx, repository.UpsertGuildParams{
				ID:         "guild-1",
				Name:       "Freelance Hub",
				WebhookUrl: webhook,
			}).
			Return(repository.Guild{ID: "guild-1", Name: "Freelance Hub", WebhookUrl: webhook}, nil)

		guild, err := svc.Upsert(ctx, domain.UpsertGuildParams{
			ID:         "guild-1",
			Name:       "Freelance Hub",
			WebhookURL: webhook,
		})
		require.NoError(t, err)
		assert.Equal(t, webhook, guild.WebhookURL)
	})
}

func Test_UpdateGuildWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("requires a webhook url", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewGuildService(mockRepo, nil)

		_, err := svc.UpdateWebhook(ctx, "guild-1", "")
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("unknown guild", func(t *testing.T) {
		mockRepo := repository.NewMockQuerier(ctrl)
		svc := NewGuildService(mockRepo, nil)

		mockRepo.EXPECT().
			UpdateGuildWebhook(ctx, gomock.Any()).
			Return(repository.Guild{}, pgx.ErrNoRows)

		guild, err := svc.UpdateWebhook(ctx, "ghost", "https://discord.com/api/webhooks/123/abc")
		assert.Nil(t, guild)
		assert.ErrorIs(t, err, ErrGuildNotFound)
	})
}
