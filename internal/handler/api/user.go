package api

import (
	"net/http"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/handler"
	"github.com/dukerupert/payme/internal/router"
)

// UserHandler exposes user profile management.
type UserHandler struct {
	users domain.UserService
}

func NewUserHandler(users domain.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes mounts the user endpoints. Profiles are keyed by
// (user, guild), so reads and patches carry both.
func (h *UserHandler) RegisterRoutes(r *router.Router) {
	r.Post("/api/users", h.Upsert)
	r.Get("/api/users/guild/{guildId}/user/{id}", h.Get)
	r.Patch("/api/users/guild/{guildId}/user/{id}", h.Update)
}

type registerUserRequest struct {
	ID               string `json:"id" validate:"required"`
	GuildID          string `json:"guildId" validate:"required"`
	Email            string `json:"email" validate:"omitempty,email"`
	PaypalEmail      string `json:"paypalEmail" validate:"omitempty,email"`
	PaypalMeUsername string `json:"paypalMeUsername" validate:"omitempty,alphanum,max=50"`
	Currency         string `json:"currency" validate:"omitempty,len=3"`
}

type updateUserRequest struct {
	Email            string `json:"email" validate:"omitempty,email"`
	PaypalEmail      string `json:"paypalEmail" validate:"omitempty,email"`
	PaypalMeUsername string `json:"paypalMeUsername" validate:"omitempty,alphanum,max=50"`
	Currency         string `json:"currency" validate:"omitempty,len=3"`
}

// Upsert handles POST /api/users. Creates the profile on first call and
// patches the provided fields on subsequent calls.
func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decode(r, "user.upsert", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.users.Upsert(r.Context(), domain.UpsertUserParams{
		ID:               req.ID,
		GuildID:          req.GuildID,
		Email:            req.Email,
		PayPalEmail:      req.PaypalEmail,
		PayPalMeUsername: req.PaypalMeUsername,
		Currency:         req.Currency,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), r.PathValue("id"), r.PathValue("guildId"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, user)
}

// Update patches a user's profile in one guild. Empty fields are left
// untouched.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decode(r, "user.update", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.users.Update(r.Context(), domain.UpsertUserParams{
		ID:               r.PathValue("id"),
		GuildID:          r.PathValue("guildId"),
		Email:            req.Email,
		PayPalEmail:      req.PaypalEmail,
		PayPalMeUsername: req.PaypalMeUsername,
		Currency:         req.Currency,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, user)
}
