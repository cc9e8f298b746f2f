package paypal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/payme/internal/telemetry"
)

const (
	sandboxAPIURL = "https://api-m.sandbox.paypal.com"
	liveAPIURL    = "https://api-m.paypal.com"

	sandboxPayerURL = "https://www.sandbox.paypal.com"
	livePayerURL    = "https://www.paypal.com"

	// tokenSafetyMargin is subtracted from the OAuth token lifetime so a
	// cached token is never used right at its expiry.
	tokenSafetyMargin = time.Minute
)

// Client calls the PayPal Invoicing v2 API with OAuth client credentials.
// The access token is cached per client instance until shortly before expiry.
type Client struct {
	clientID     string
	clientSecret string
	webhookID    string
	baseURL      string
	payerBaseURL string
	httpClient   *http.Client
	metrics      *telemetry.BusinessMetrics
	logger       *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

var _ Provider = (*Client)(nil)

// NewClient creates a PayPal API client. Mode selects the API host:
// "live" targets production, anything else targets the sandbox. The
// metrics may be nil in tests.
func NewClient(clientID, clientSecret, mode, webhookID string, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *Client {
	baseURL := sandboxAPIURL
	payerBaseURL := sandboxPayerURL
	if mode == "live" {
		baseURL = liveAPIURL
		payerBaseURL = livePayerURL
	}

	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		webhookID:    webhookID,
		baseURL:      baseURL,
		payerBaseURL: payerBaseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		metrics:      metrics,
		logger:       logger,
	}
}

// getAccessToken returns a cached OAuth token, fetching a fresh one when the
// cache is empty or about to expire.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal: auth request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Op: "auth", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("paypal: decoding token response: %w", err)
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenSafetyMargin)

	return c.accessToken, nil
}

// do sends an authenticated request and returns the response status and body.
// The op label feeds the API latency histogram.
func (c *Client) do(ctx context.Context, op, method, path string, payload interface{}) (int, []byte, error) {
	if c.metrics != nil {
		start := time.Now()
		defer func() {
			c.metrics.PayPalAPILatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
		}()
	}

	token, err := c.getAccessToken(ctx)
	if err != nil {
		return 0, nil, err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("paypal: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, respBody, nil
}

// CreateInvoice creates a draft invoice and resolves its payer view link.
// The create endpoint often returns only a self href, so the id is extracted
// from the href when absent, and the link is recovered with a follow-up GET.
func (c *Client) CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*Invoice, error) {
	itemName := params.Description
	if len(itemName) > 100 {
		itemName = itemName[:100]
	}

	payload := map[string]interface{}{
		"detail": map[string]interface{}{
			"invoice_number": params.InvoiceNumber,
			"currency_code":  params.Currency,
			"note":           params.Description,
			"payment_term": map[string]string{
				"term_type": "NET_30",
			},
		},
		"invoicer": map[string]string{
			"email_address": params.InvoicerEmail,
		},
		"primary_recipients": []map[string]interface{}{
			{
				"billing_info": map[string]string{
					"email_address": params.RecipientEmail,
				},
			},
		},
		"items": []map[string]interface{}{
			{
				"name":     itemName,
				"quantity": "1",
				"unit_amount": map[string]string{
					"currency_code": params.Currency,
					"value":         params.Amount.StringFixed(2),
				},
			},
		},
	}

	status, body, err := c.do(ctx, "create_invoice", http.MethodPost, "/v2/invoicing/invoices", payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &APIError{Op: "create invoice", StatusCode: status, Body: string(body)}
	}

	var created struct {
		ID   string `json:"id"`
		Href string `json:"href"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("paypal: decoding create response: %w", err)
	}

	id := created.ID
	if id == "" && created.Href != "" {
		parts := strings.Split(created.Href, "/")
		id = parts[len(parts)-1]
	}
	if id == "" {
		return nil, ErrNoInvoiceID
	}

	// Fetch the full record to learn the payer view link. Falls back to a
	// constructed link so the caller always gets something shareable.
	payerLink := c.payerBaseURL + "/invoice/p/" + id
	detail, err := c.GetInvoice(ctx, id)
	if err != nil {
		c.logger.Error("failed to fetch invoice details", slog.String("paypal_invoice_id", id), slog.String("error", err.Error()))
	} else if detail.RecipientViewURL() != "" {
		payerLink = detail.RecipientViewURL()
	}

	return &Invoice{
		ID:           id,
		PayerViewURL: payerLink,
		Status:       "DRAFT",
	}, nil
}

// SendInvoice emails the invoice to both invoicer and recipient.
func (c *Client) SendInvoice(ctx context.Context, paypalInvoiceID string) error {
	payload := map[string]bool{
		"send_to_invoicer":  true,
		"send_to_recipient": true,
	}

	status, body, err := c.do(ctx, "send_invoice", http.MethodPost, "/v2/invoicing/invoices/"+paypalInvoiceID+"/send", payload)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &APIError{Op: "send invoice", StatusCode: status, Body: string(body)}
	}
	return nil
}

// CancelInvoice cancels a sent invoice and notifies both parties.
// 404 and 422 responses (already cancelled or not cancellable) are no-ops.
func (c *Client) CancelInvoice(ctx context.Context, paypalInvoiceID string) error {
	payload := map[string]interface{}{
		"send_to_invoicer":  true,
		"send_to_recipient": true,
		"note":              "Invoice cancelled via PayMe Bot",
	}

	status, body, err := c.do(ctx, "cancel_invoice", http.MethodPost, "/v2/invoicing/invoices/"+paypalInvoiceID+"/cancel", payload)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		if status == http.StatusNotFound || status == http.StatusUnprocessableEntity {
			return nil
		}
		return &APIError{Op: "cancel invoice", StatusCode: status, Body: string(body)}
	}
	return nil
}

// DeleteInvoice removes a draft invoice. 404 (already gone) is a no-op.
func (c *Client) DeleteInvoice(ctx context.Context, paypalInvoiceID string) error {
	status, body, err := c.do(ctx, "delete_invoice", http.MethodDelete, "/v2/invoicing/invoices/"+paypalInvoiceID, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		if status == http.StatusNotFound {
			return nil
		}
		return &APIError{Op: "delete invoice", StatusCode: status, Body: string(body)}
	}
	return nil
}

// GetInvoice fetches the full invoice record.
func (c *Client) GetInvoice(ctx context.Context, paypalInvoiceID string) (*InvoiceDetail, error) {
	status, body, err := c.do(ctx, "get_invoice", http.MethodGet, "/v2/invoicing/invoices/"+paypalInvoiceID, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &APIError{Op: "get invoice", StatusCode: status, Body: string(body)}
	}

	var detail InvoiceDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("paypal: decoding invoice: %w", err)
	}
	return &detail, nil
}

// VerifyWebhookSignature checks a webhook delivery against the provider's
// verification endpoint. When no webhook id is configured, verification is
// skipped and every delivery is accepted. Intended for sandbox development
// only; a warning is logged each time.
func (c *Client) VerifyWebhookSignature(ctx context.Context, params VerifyWebhookParams) (bool, error) {
	if c.webhookID == "" {
		c.logger.Warn("PAYPAL_WEBHOOK_ID not set, skipping webhook verification")
		return true, nil
	}

	payload := map[string]interface{}{
		"auth_algo":         params.AuthAlgo,
		"cert_url":          params.CertURL,
		"transmission_id":   params.TransmissionID,
		"transmission_sig":  params.TransmissionSig,
		"transmission_time": params.TransmissionTime,
		"webhook_id":        c.webhookID,
		"webhook_event":     params.Event,
	}

	status, body, err := c.do(ctx, "verify_webhook", http.MethodPost, "/v1/notifications/verify-webhook-signature", payload)
	if err != nil {
		return false, err
	}
	if status < 200 || status > 299 {
		return false, &APIError{Op: "verify webhook signature", StatusCode: status, Body: string(body)}
	}

	var result struct {
		VerificationStatus string `json:"verification_status"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("paypal: decoding verification response: %w", err)
	}

	return result.VerificationStatus == "SUCCESS", nil
}
