package api

import (
	"net/http"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/handler"
	"github.com/dukerupert/payme/internal/router"
)

// StatsHandler exposes per-user invoice aggregates.
type StatsHandler struct {
	invoices domain.InvoiceService
}

func NewStatsHandler(invoices domain.InvoiceService) *StatsHandler {
	return &StatsHandler{invoices: invoices}
}

// RegisterRoutes mounts the stats endpoint.
func (h *StatsHandler) RegisterRoutes(r *router.Router) {
	r.Get("/api/stats/user/{userId}", h.UserStats)
}

// UserStats handles GET /api/stats/user/{userId}?guildId=. An empty guildId
// aggregates across every guild the user invoices in.
func (h *StatsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.invoices.Stats(r.Context(),
		r.PathValue("userId"), r.URL.Query().Get("guildId"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, stats)
}
