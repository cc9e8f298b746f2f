package api

import (
	"net/http"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/handler"
	"github.com/dukerupert/payme/internal/router"
)

// GuildHandler exposes guild registration and webhook configuration.
type GuildHandler struct {
	guilds domain.GuildService
}

func NewGuildHandler(guilds domain.GuildService) *GuildHandler {
	return &GuildHandler{guilds: guilds}
}

// RegisterRoutes mounts the guild endpoints.
func (h *GuildHandler) RegisterRoutes(r *router.Router) {
	r.Post("/api/guilds", h.Upsert)
	r.Get("/api/guilds/{id}", h.Get)
	r.Patch("/api/guilds/{id}/webhook", h.UpdateWebhook)
}

type registerGuildRequest struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required,max=100"`
	WebhookURL string `json:"webhookUrl" validate:"omitempty,startswith=https://discord.com/api/webhooks/"`
}

type updateGuildWebhookRequest struct {
	WebhookURL string `json:"webhookUrl" validate:"required,startswith=https://discord.com/api/webhooks/"`
}

// Upsert handles POST /api/guilds.
func (h *GuildHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req registerGuildRequest
	if err := decode(r, "guild.upsert", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	guild, err := h.guilds.Upsert(r.Context(), domain.UpsertGuildParams{
		ID:         req.ID,
		Name:       req.Name,
		WebhookURL: req.WebhookURL,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, guild)
}

func (h *GuildHandler) Get(w http.ResponseWriter, r *http.Request) {
	guild, err := h.guilds.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, guild)
}

// UpdateWebhook handles PATCH /api/guilds/{id}/webhook.
func (h *GuildHandler) UpdateWebhook(w http.ResponseWriter, r *http.Request) {
	var req updateGuildWebhookRequest
	if err := decode(r, "guild.update_webhook", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	guild, err := h.guilds.UpdateWebhook(r.Context(), r.PathValue("id"), req.WebhookURL)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, guild)
}
