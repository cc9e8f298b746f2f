package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const (
	colorGreen   = 0x00ff00
	colorBlurple = 0x5865f2

	footerText = "PayMe Bot"
)

// PaymentNotificationParams describes a payment-received announcement posted
// to a guild's Discord webhook.
type PaymentNotificationParams struct {
	WebhookURL      string
	InvoiceID       string
	Amount          decimal.Decimal
	Currency        string
	Description     string
	UserID          string
	ClientDiscordID string
}

// InvoiceCreatedParams describes an invoice-created announcement.
// PaymentLink is optional.
type InvoiceCreatedParams struct {
	WebhookURL      string
	InvoiceID       string
	Amount          decimal.Decimal
	Currency        string
	Description     string
	UserID          string
	ClientDiscordID string
	PaymentLink     string
}

// Notifier posts invoice events to Discord. Implementations must be safe for
// concurrent use.
type Notifier interface {
	SendPaymentNotification(ctx context.Context, params PaymentNotificationParams) error
	SendInvoiceCreatedNotification(ctx context.Context, params InvoiceCreatedParams) error
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
	Footer    struct {
		Text string `json:"text"`
	} `json:"footer"`
}

// WebhookNotifier delivers notifications through Discord webhook URLs.
type WebhookNotifier struct {
	httpClient *http.Client
}

var _ Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier creates a webhook-based Discord notifier.
func NewWebhookNotifier() *WebhookNotifier {
	return &WebhookNotifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendPaymentNotification announces a paid invoice in the guild channel.
func (n *WebhookNotifier) SendPaymentNotification(ctx context.Context, params PaymentNotificationParams) error {
	e := newEmbed("💰 Payment Received!", colorGreen, []embedField{
		{Name: "Invoice ID", Value: "`" + params.InvoiceID + "`", Inline: true},
		{Name: "Amount", Value: fmt.Sprintf("**%s %s**", params.Currency, params.Amount.StringFixed(2)), Inline: true},
		{Name: "Description", Value: params.Description},
		{Name: "Client", Value: mention(params.ClientDiscordID), Inline: true},
		{Name: "Invoicer", Value: mention(params.UserID), Inline: true},
	})

	return n.post(ctx, params.WebhookURL, e)
}

// SendInvoiceCreatedNotification announces a freshly created invoice.
func (n *WebhookNotifier) SendInvoiceCreatedNotification(ctx context.Context, params InvoiceCreatedParams) error {
	fields := []embedField{
		{Name: "Invoice ID", Value: "`" + params.InvoiceID + "`", Inline: true},
		{Name: "Amount", Value: fmt.Sprintf("**%s %s**", params.Currency, params.Amount.StringFixed(2)), Inline: true},
		{Name: "Description", Value: params.Description},
		{Name: "Client", Value: mention(params.ClientDiscordID), Inline: true},
		{Name: "Created By", Value: mention(params.UserID), Inline: true},
	}
	if params.PaymentLink != "" {
		fields = append(fields, embedField{
			Name:  "Payment Link",
			Value: fmt.Sprintf("[Click to Pay](%s)", params.PaymentLink),
		})
	}

	return n.post(ctx, params.WebhookURL, newEmbed("📄 Invoice Created", colorBlurple, fields))
}

func (n *WebhookNotifier) post(ctx context.Context, webhookURL string, e embed) error {
	payload, err := json.Marshal(map[string]interface{}{
		"embeds": []embed{e},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord: webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord: webhook failed with status %d: %s", resp.StatusCode, body)
	}
	return nil
}

func newEmbed(title string, color int, fields []embedField) embed {
	e := embed{
		Title:     title,
		Color:     color,
		Fields:    fields,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	e.Footer.Text = footerText
	return e
}

func mention(discordID string) string {
	return "<@" + discordID + ">"
}
