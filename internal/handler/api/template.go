package api

import (
	"net/http"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/handler"
	"github.com/dukerupert/payme/internal/router"
	"github.com/shopspring/decimal"
)

// TemplateHandler exposes reusable invoice presets.
type TemplateHandler struct {
	templates domain.TemplateService
}

func NewTemplateHandler(templates domain.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// RegisterRoutes mounts the template endpoints.
func (h *TemplateHandler) RegisterRoutes(r *router.Router) {
	r.Post("/api/templates", h.Create)
	r.Get("/api/templates/guild/{guildId}/user/{userId}", h.List)
	r.Get("/api/templates/guild/{guildId}/user/{userId}/name/{name}", h.GetByName)
	r.Delete("/api/templates/{id}", h.Delete)
}

type createTemplateRequest struct {
	UserID      string          `json:"userId" validate:"required"`
	GuildID     string          `json:"guildId" validate:"required"`
	Name        string          `json:"name" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Description string          `json:"description" validate:"required,max=500"`
}

// Create handles POST /api/templates. Duplicate names within a guild and
// user return a conflict.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := decode(r, "template.create", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	template, err := h.templates.Create(r.Context(), domain.CreateTemplateParams{
		UserID:      req.UserID,
		GuildID:     req.GuildID,
		Name:        req.Name,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusCreated, template)
}

// List handles GET /api/templates/guild/{guildId}/user/{userId}.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context(), r.PathValue("guildId"), r.PathValue("userId"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, templates)
}

// GetByName handles GET /api/templates/guild/{guildId}/user/{userId}/name/{name}.
func (h *TemplateHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	template, err := h.templates.GetByName(r.Context(),
		r.PathValue("guildId"), r.PathValue("userId"), r.PathValue("name"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, template)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Delete(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
