package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/repository"
	"github.com/jackc/pgx/v5"
)

var paypalMeUsernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

type userService struct {
	repo   repository.Querier
	logger *slog.Logger
}

var _ domain.UserService = (*userService)(nil)

// NewUserService creates a user profile service.
func NewUserService(repo repository.Querier, logger *slog.Logger) domain.UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{repo: repo, logger: logger}
}

func validateUserParams(op string, params domain.UpsertUserParams) error {
	if params.PayPalMeUsername != "" {
		if len(params.PayPalMeUsername) > 50 || !paypalMeUsernameRe.MatchString(params.PayPalMeUsername) {
			return domain.Invalid(op, "Username can only contain letters and numbers")
		}
	}
	if params.Currency != "" && len(params.Currency) != 3 {
		return domain.Invalid(op, "Currency must be a 3-letter code")
	}
	return nil
}

func (s *userService) Upsert(ctx context.Context, params domain.UpsertUserParams) (*domain.User, error) {
	const op = "user.upsert"

	if params.ID == "" {
		return nil, domain.Invalid(op, "User ID is required")
	}
	if params.GuildID == "" {
		return nil, domain.Invalid(op, "Guild ID is required")
	}
	if err := validateUserParams(op, params); err != nil {
		return nil, err
	}

	row, err := s.repo.UpsertUser(ctx, repository.UpsertUserParams{
		ID:               params.ID,
		GuildID:          params.GuildID,
		Email:            params.Email,
		PaypalEmail:      params.PayPalEmail,
		PaypalMeUsername: params.PayPalMeUsername,
		Currency:         params.Currency,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to upsert user")
	}

	return toDomainUser(row), nil
}

// Get loads the profile a user holds in one guild.
func (s *userService) Get(ctx context.Context, id, guildID string) (*domain.User, error) {
	row, err := s.repo.GetUser(ctx, id, guildID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, "user.get", "failed to get user")
	}
	return toDomainUser(row), nil
}

// Update patches only the fields set in params. Updating a missing user is
// a not-found error, unlike Upsert.
func (s *userService) Update(ctx context.Context, params domain.UpsertUserParams) (*domain.User, error) {
	const op = "user.update"

	if err := validateUserParams(op, params); err != nil {
		return nil, err
	}

	row, err := s.repo.UpdateUser(ctx, repository.UpdateUserParams{
		ID:               params.ID,
		GuildID:          params.GuildID,
		Email:            optional(params.Email),
		PaypalEmail:      optional(params.PayPalEmail),
		PaypalMeUsername: optional(params.PayPalMeUsername),
		Currency:         optional(params.Currency),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to update user")
	}

	return toDomainUser(row), nil
}

// optional maps "" to nil so COALESCE keeps the stored value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
