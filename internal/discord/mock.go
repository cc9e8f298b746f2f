package discord

import "context"

// MockNotifier records notifications for test assertions.
type MockNotifier struct {
	SendPaymentNotificationFunc        func(ctx context.Context, params PaymentNotificationParams) error
	SendInvoiceCreatedNotificationFunc func(ctx context.Context, params InvoiceCreatedParams) error

	PaymentNotifications []PaymentNotificationParams
	CreatedNotifications []InvoiceCreatedParams
}

var _ Notifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendPaymentNotification(ctx context.Context, params PaymentNotificationParams) error {
	m.PaymentNotifications = append(m.PaymentNotifications, params)

	if m.SendPaymentNotificationFunc != nil {
		return m.SendPaymentNotificationFunc(ctx, params)
	}
	return nil
}

func (m *MockNotifier) SendInvoiceCreatedNotification(ctx context.Context, params InvoiceCreatedParams) error {
	m.CreatedNotifications = append(m.CreatedNotifications, params)

	if m.SendInvoiceCreatedNotificationFunc != nil {
		return m.SendInvoiceCreatedNotificationFunc(ctx, params)
	}
	return nil
}
