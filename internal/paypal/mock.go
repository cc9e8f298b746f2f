package paypal

import (
	"context"
	"fmt"
)

// MockProvider is a mock invoicing gateway for testing. Defaults simulate a
// healthy provider; individual methods are overridden via the Func fields.
type MockProvider struct {
	CreateInvoiceFunc          func(ctx context.Context, params CreateInvoiceParams) (*Invoice, error)
	SendInvoiceFunc            func(ctx context.Context, paypalInvoiceID string) error
	CancelInvoiceFunc          func(ctx context.Context, paypalInvoiceID string) error
	DeleteInvoiceFunc          func(ctx context.Context, paypalInvoiceID string) error
	GetInvoiceFunc             func(ctx context.Context, paypalInvoiceID string) (*InvoiceDetail, error)
	VerifyWebhookSignatureFunc func(ctx context.Context, params VerifyWebhookParams) (bool, error)

	// CallLog tracks method calls for test assertions.
	CallLog []string
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a new mock invoicing gateway.
func NewMockProvider() *MockProvider {
	return &MockProvider{CallLog: []string{}}
}

func (m *MockProvider) CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*Invoice, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("CreateInvoice(%s)", params.InvoiceNumber))

	if m.CreateInvoiceFunc != nil {
		return m.CreateInvoiceFunc(ctx, params)
	}

	id := "INV2-MOCK-" + params.InvoiceNumber
	return &Invoice{
		ID:           id,
		PayerViewURL: "https://www.sandbox.paypal.com/invoice/p/" + id,
		Status:       "DRAFT",
	}, nil
}

func (m *MockProvider) SendInvoice(ctx context.Context, paypalInvoiceID string) error {
	m.CallLog = append(m.CallLog, fmt.Sprintf("SendInvoice(%s)", paypalInvoiceID))

	if m.SendInvoiceFunc != nil {
		return m.SendInvoiceFunc(ctx, paypalInvoiceID)
	}
	return nil
}

func (m *MockProvider) CancelInvoice(ctx context.Context, paypalInvoiceID string) error {
	m.CallLog = append(m.CallLog, fmt.Sprintf("CancelInvoice(%s)", paypalInvoiceID))

	if m.CancelInvoiceFunc != nil {
		return m.CancelInvoiceFunc(ctx, paypalInvoiceID)
	}
	return nil
}

func (m *MockProvider) DeleteInvoice(ctx context.Context, paypalInvoiceID string) error {
	m.CallLog = append(m.CallLog, fmt.Sprintf("DeleteInvoice(%s)", paypalInvoiceID))

	if m.DeleteInvoiceFunc != nil {
		return m.DeleteInvoiceFunc(ctx, paypalInvoiceID)
	}
	return nil
}

func (m *MockProvider) GetInvoice(ctx context.Context, paypalInvoiceID string) (*InvoiceDetail, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("GetInvoice(%s)", paypalInvoiceID))

	if m.GetInvoiceFunc != nil {
		return m.GetInvoiceFunc(ctx, paypalInvoiceID)
	}
	return &InvoiceDetail{ID: paypalInvoiceID, Status: "DRAFT"}, nil
}

func (m *MockProvider) VerifyWebhookSignature(ctx context.Context, params VerifyWebhookParams) (bool, error) {
	m.CallLog = append(m.CallLog, "VerifyWebhookSignature")

	if m.VerifyWebhookSignatureFunc != nil {
		return m.VerifyWebhookSignatureFunc(ctx, params)
	}
	return true, nil
}
