package api

import (
	"net/http"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/handler"
	"github.com/dukerupert/payme/internal/router"
)

// ClientHandler exposes saved billing contacts.
type ClientHandler struct {
	clients domain.ClientService
}

func NewClientHandler(clients domain.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// RegisterRoutes mounts the client endpoints.
func (h *ClientHandler) RegisterRoutes(r *router.Router) {
	r.Post("/api/clients", h.Upsert)
	r.Get("/api/clients/user/{userId}/guild/{guildId}", h.List)
	r.Get("/api/clients/user/{userId}/guild/{guildId}/client/{clientId}", h.Get)
	r.Delete("/api/clients/user/{userId}/guild/{guildId}/client/{clientId}", h.Delete)
}

type upsertClientRequest struct {
	UserID    string `json:"userId" validate:"required"`
	GuildID   string `json:"guildId" validate:"required"`
	DiscordID string `json:"discordId" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
}

// Upsert handles POST /api/clients. Re-posting the same contact refreshes
// its name and email.
func (h *ClientHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertClientRequest
	if err := decode(r, "client.upsert", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	client, err := h.clients.Upsert(r.Context(), domain.UpsertClientParams{
		UserID:    req.UserID,
		GuildID:   req.GuildID,
		DiscordID: req.DiscordID,
		Name:      req.Name,
		Email:     req.Email,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, client)
}

// List handles GET /api/clients/user/{userId}/guild/{guildId}, ordered by name.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context(), r.PathValue("guildId"), r.PathValue("userId"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients.Get(r.Context(),
		r.PathValue("guildId"), r.PathValue("userId"), r.PathValue("clientId"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.clients.Delete(r.Context(),
		r.PathValue("guildId"), r.PathValue("userId"), r.PathValue("clientId"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
