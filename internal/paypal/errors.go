package paypal

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned when the client id or secret is unset.
	ErrMissingCredentials = errors.New("paypal: credentials not configured")

	// ErrNoInvoiceID is returned when a create response carries neither an
	// invoice id nor a self href to extract one from.
	ErrNoInvoiceID = errors.New("paypal: failed to extract invoice ID from response")
)

// APIError is a non-2xx response from the PayPal API. The response body is
// preserved verbatim for logging.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal: %s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
