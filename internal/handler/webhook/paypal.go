package webhook

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/payme/internal/discord"
	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/paypal"
	"github.com/dukerupert/payme/internal/router"
	"github.com/dukerupert/payme/internal/telemetry"
)

// PayPalHandler receives provider webhook deliveries and reconciles them
// into local invoice state.
type PayPalHandler struct {
	provider paypal.Provider
	invoices domain.InvoiceService
	guilds   domain.GuildService
	notifier discord.Notifier
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

// NewPayPalHandler creates a webhook handler. The notifier and metrics may
// be nil in tests.
func NewPayPalHandler(provider paypal.Provider, invoices domain.InvoiceService, guilds domain.GuildService, notifier discord.Notifier, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *PayPalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayPalHandler{
		provider: provider,
		invoices: invoices,
		guilds:   guilds,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// RegisterRoutes mounts the webhook endpoint.
func (h *PayPalHandler) RegisterRoutes(r *router.Router) {
	r.Post("/webhooks/paypal", h.HandlePayPal)
}

// webhookEvent is the subset of a PayPal webhook payload the reconciler
// cares about. The invoice id appears at resource.invoice.id for
// INVOICING.* events and resource.id for legacy INVOICES.* events.
type webhookEvent struct {
	EventType string `json:"event_type"`
	Resource  struct {
		ID      string `json:"id"`
		Invoice struct {
			ID string `json:"id"`
		} `json:"invoice"`
	} `json:"resource"`
}

func (e *webhookEvent) invoiceID() string {
	if e.Resource.Invoice.ID != "" {
		return e.Resource.Invoice.ID
	}
	return e.Resource.ID
}

// HandlePayPal handles POST /webhooks/paypal. Failed signature verification
// is rejected with 401; every other outcome acknowledges with 200 so the
// provider does not retry deliveries we cannot act on.
func (h *PayPalHandler) HandlePayPal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("reading webhook body", slog.String("error", err.Error()))
		h.unauthorized(w)
		return
	}

	ok, err := h.provider.VerifyWebhookSignature(r.Context(), paypal.VerifyWebhookParams{
		AuthAlgo:         r.Header.Get("Paypal-Auth-Algo"),
		CertURL:          r.Header.Get("Paypal-Cert-Url"),
		TransmissionID:   r.Header.Get("Paypal-Transmission-Id"),
		TransmissionSig:  r.Header.Get("Paypal-Transmission-Sig"),
		TransmissionTime: r.Header.Get("Paypal-Transmission-Time"),
		Event:            body,
	})
	if err != nil || !ok {
		if err != nil {
			h.logger.Error("webhook verification failed", slog.String("error", err.Error()))
		} else {
			h.logger.Error("webhook signature rejected")
		}
		h.unauthorized(w)
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("malformed webhook payload", slog.String("error", err.Error()))
		h.ack(w)
		return
	}

	h.logger.Info("paypal webhook received", slog.String("event_type", event.EventType))
	if h.metrics != nil {
		h.metrics.WebhookReceived.WithLabelValues(event.EventType).Inc()
		defer func() {
			h.metrics.WebhookLatency.WithLabelValues(event.EventType).Observe(time.Since(start).Seconds())
		}()
	}

	switch event.EventType {
	case "INVOICING.INVOICE.PAID", "INVOICES.INVOICE.PAID":
		h.handlePaid(r, &event)
	case "INVOICING.INVOICE.CANCELLED", "INVOICES.INVOICE.CANCELLED":
		h.handleCancelled(r, &event)
	}

	h.ack(w)
}

func (h *PayPalHandler) handlePaid(r *http.Request, event *webhookEvent) {
	paypalInvoiceID := event.invoiceID()
	if paypalInvoiceID == "" {
		h.logger.Error("no invoice id in webhook payload", slog.String("event_type", event.EventType))
		h.fail(event.EventType, "missing_id")
		return
	}

	result, err := h.invoices.MarkPaidByPayPalID(r.Context(), paypalInvoiceID)
	if err != nil {
		h.logger.Error("marking invoice paid",
			slog.String("paypal_invoice_id", paypalInvoiceID),
			slog.String("error", err.Error()))
		h.fail(event.EventType, "store")
		return
	}
	if result.Invoice == nil {
		h.logger.Info("invoice not found for paypal id", slog.String("paypal_invoice_id", paypalInvoiceID))
		return
	}
	if !result.Changed {
		h.logger.Info("duplicate paid event", slog.String("invoice_id", result.Invoice.ID))
		return
	}

	h.logger.Info("invoice marked paid", slog.String("invoice_id", result.Invoice.ID))
	if h.metrics != nil {
		h.metrics.WebhookProcessed.WithLabelValues(event.EventType).Inc()
		h.metrics.InvoicesPaid.WithLabelValues(result.Invoice.Currency).Inc()
	}

	h.announcePayment(r, result.Invoice)
}

func (h *PayPalHandler) handleCancelled(r *http.Request, event *webhookEvent) {
	paypalInvoiceID := event.invoiceID()
	if paypalInvoiceID == "" {
		h.logger.Error("no invoice id in webhook payload", slog.String("event_type", event.EventType))
		h.fail(event.EventType, "missing_id")
		return
	}

	count, err := h.invoices.CancelByPayPalID(r.Context(), paypalInvoiceID)
	if err != nil {
		h.logger.Error("cancelling invoice",
			slog.String("paypal_invoice_id", paypalInvoiceID),
			slog.String("error", err.Error()))
		h.fail(event.EventType, "store")
		return
	}
	if count == 0 {
		return
	}

	h.logger.Info("invoice cancelled from paypal",
		slog.String("paypal_invoice_id", paypalInvoiceID),
		slog.Int("count", count))
	if h.metrics != nil {
		h.metrics.WebhookProcessed.WithLabelValues(event.EventType).Inc()
		h.metrics.InvoicesCancelled.WithLabelValues("webhook").Add(float64(count))
	}
}

// announcePayment posts a payment-received embed to the guild channel when a
// webhook is configured. Best effort; a failed announcement never fails the
// delivery.
func (h *PayPalHandler) announcePayment(r *http.Request, invoice *domain.Invoice) {
	if h.notifier == nil || h.guilds == nil {
		return
	}

	guild, err := h.guilds.Get(r.Context(), invoice.GuildID)
	if err != nil || guild.WebhookURL == "" {
		return
	}

	err = h.notifier.SendPaymentNotification(r.Context(), discord.PaymentNotificationParams{
		WebhookURL:      guild.WebhookURL,
		InvoiceID:       invoice.ID,
		Amount:          invoice.Amount,
		Currency:        invoice.Currency,
		Description:     invoice.Description,
		UserID:          invoice.UserID,
		ClientDiscordID: invoice.ClientDiscordID,
	})
	if h.metrics != nil {
		if err != nil {
			h.metrics.NotificationsFailed.WithLabelValues("payment").Inc()
		} else {
			h.metrics.NotificationsSent.WithLabelValues("payment").Inc()
		}
	}
	if err != nil {
		h.logger.Warn("payment notification failed",
			slog.String("invoice_id", invoice.ID),
			slog.String("error", err.Error()))
	}
}

func (h *PayPalHandler) fail(eventType, reason string) {
	if h.metrics != nil {
		h.metrics.WebhookFailed.WithLabelValues(eventType, reason).Inc()
	}
}

func (h *PayPalHandler) ack(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *PayPalHandler) unauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte("Unauthorized"))
}
