package api

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/payme/internal/discord"
	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/handler"
	"github.com/dukerupert/payme/internal/router"
	"github.com/shopspring/decimal"
)

// InvoiceHandler exposes the invoice lifecycle over REST.
type InvoiceHandler struct {
	invoices domain.InvoiceService
	guilds   domain.GuildService
	notifier discord.Notifier
	logger   *slog.Logger
}

// NewInvoiceHandler creates an invoice handler. The notifier is used for
// best-effort reminder announcements and may be nil in tests.
func NewInvoiceHandler(invoices domain.InvoiceService, guilds domain.GuildService, notifier discord.Notifier, logger *slog.Logger) *InvoiceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceHandler{
		invoices: invoices,
		guilds:   guilds,
		notifier: notifier,
		logger:   logger,
	}
}

// RegisterRoutes mounts the invoice endpoints.
func (h *InvoiceHandler) RegisterRoutes(r *router.Router) {
	r.Post("/api/invoices", h.Create)
	r.Get("/api/invoices/guild/{guildId}", h.ListByGuild)
	r.Get("/api/invoices/{id}", h.Get)
	r.Patch("/api/invoices/{id}/cancel", h.Cancel)
	r.Post("/api/invoices/{id}/remind", h.Remind)
	r.Delete("/api/invoices/{id}", h.Delete)
	r.Delete("/api/invoices", h.BulkDelete)
}

type createInvoiceRequest struct {
	UserID          string          `json:"userId" validate:"required"`
	GuildID         string          `json:"guildId" validate:"required"`
	ClientDiscordID string          `json:"clientDiscordId" validate:"required"`
	ClientEmail     string          `json:"clientEmail" validate:"omitempty,email"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	Currency        string          `json:"currency" validate:"omitempty,len=3"`
	Description     string          `json:"description" validate:"required,max=500"`
}

// Create handles POST /api/invoices. A degraded PayPal step still returns
// 201 with a warning field on the invoice.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := decode(r, "invoice.create", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	invoice, err := h.invoices.Create(r.Context(), domain.CreateInvoiceParams{
		UserID:          req.UserID,
		GuildID:         req.GuildID,
		ClientDiscordID: req.ClientDiscordID,
		ClientEmail:     req.ClientEmail,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Description:     req.Description,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusCreated, invoice)
}

// ListByGuild handles GET /api/invoices/guild/{guildId}?userId=&status=.
func (h *InvoiceHandler) ListByGuild(w http.ResponseWriter, r *http.Request) {
	filter := domain.InvoiceFilter{
		GuildID: r.PathValue("guildId"),
		UserID:  r.URL.Query().Get("userId"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.InvoiceStatus(status)
		if !s.Valid() {
			handler.ErrorResponse(w, r, domain.Invalid("invoice.list", "Unknown invoice status"))
			return
		}
		filter.Status = s
	}

	invoices, err := h.invoices.List(r.Context(), filter, 50)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoices.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoices.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, invoice)
}

// Remind handles POST /api/invoices/{id}/remind. On success it re-posts the
// invoice embed to the guild channel when a webhook is configured; the
// announcement is best effort and never fails the request.
func (h *InvoiceHandler) Remind(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	info, err := h.invoices.Remind(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.announceReminder(r, id, info)

	handler.JSON(w, http.StatusOK, info)
}

func (h *InvoiceHandler) announceReminder(r *http.Request, id string, info *domain.ReminderInfo) {
	if h.notifier == nil || h.guilds == nil {
		return
	}

	invoice, err := h.invoices.Get(r.Context(), id)
	if err != nil {
		return
	}
	guild, err := h.guilds.Get(r.Context(), invoice.GuildID)
	if err != nil || guild.WebhookURL == "" {
		return
	}

	if err := h.notifier.SendInvoiceCreatedNotification(r.Context(), discord.InvoiceCreatedParams{
		WebhookURL:      guild.WebhookURL,
		InvoiceID:       invoice.ID,
		Amount:          info.Amount,
		Currency:        info.Currency,
		Description:     info.Description,
		UserID:          invoice.UserID,
		ClientDiscordID: info.ClientDiscordID,
		PaymentLink:     info.PayPalLink,
	}); err != nil {
		h.logger.Warn("reminder notification failed",
			slog.String("invoice_id", id),
			slog.String("error", err.Error()))
	}
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.invoices.Delete(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// BulkDelete handles DELETE /api/invoices?guildId=&userId=&status=.
func (h *InvoiceHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	filter := domain.InvoiceFilter{
		GuildID: r.URL.Query().Get("guildId"),
		UserID:  r.URL.Query().Get("userId"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.InvoiceStatus(status)
		if !s.Valid() {
			handler.ErrorResponse(w, r, domain.Invalid("invoice.bulk_delete", "Unknown invoice status"))
			return
		}
		filter.Status = s
	}

	count, err := h.invoices.BulkDelete(r.Context(), filter)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]int{"count": count})
}
