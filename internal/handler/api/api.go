// Package api implements the REST surface consumed by the Discord bot.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decode unmarshals and validates a JSON request body. Validation failures
// come back as a single EINVALID error listing the offending fields, in the
// shape the bot already parses.
func decode(r *http.Request, op string, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Invalid(op, "Invalid JSON body")
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return domain.Invalid(op, formatValidationErrors(verrs))
		}
		return domain.Invalid(op, "Invalid request body")
	}
	return nil
}

func formatValidationErrors(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, ", ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + ": invalid email format"
	case "len":
		return field + " must be exactly " + fe.Param() + " characters"
	case "max":
		return field + " is too long"
	case "min":
		return field + " is too short"
	case "alphanum":
		return field + " can only contain letters and numbers"
	case "startswith":
		return field + " must start with " + fe.Param()
	case "url":
		return field + ": invalid URL"
	default:
		return field + " is invalid"
	}
}
