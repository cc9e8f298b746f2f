package service

import (
	"github.com/dukerupert/payme/internal/domain"
)

// Not-found errors - use domain.ENOTFOUND
var (
	ErrInvoiceNotFound  = domain.Errorf(domain.ENOTFOUND, "", "Invoice not found")
	ErrUserNotFound     = domain.Errorf(domain.ENOTFOUND, "", "User not found")
	ErrGuildNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Guild not found")
	ErrClientNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Client not found")
	ErrTemplateNotFound = domain.Errorf(domain.ENOTFOUND, "", "Template not found")
)

// Precondition errors - use domain.EINVALID
var (
	ErrCannotCancelPaid         = domain.Errorf(domain.EINVALID, "", "Cannot cancel a paid invoice")
	ErrPayPalEmailNotConfigured = domain.Errorf(domain.EINVALID, "", "PayPal email not configured. Use /setup command first.")
	ErrNotEligibleForReminder   = domain.Errorf(domain.EINVALID, "", "Invoice has no payment link. Create it with a client email first.")
)

// Conflict errors
var (
	ErrTemplateNameTaken = domain.Errorf(domain.ECONFLICT, "", "A template with this name already exists")
	ErrClientExists      = domain.Errorf(domain.ECONFLICT, "", "Client already saved for this user and guild")
)

// Warnings attached to a degraded-but-successful invoice creation. The
// invoice row exists locally either way; the warning tells the caller which
// remote step failed.
const (
	WarningPayPalCreateFailed = "Failed to create PayPal invoice"
	WarningPayPalSendFailed   = "Invoice created but email sending failed. Share the link manually."
)
