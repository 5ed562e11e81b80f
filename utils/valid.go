// utils/validation.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SanitizeEmail trims and lower-cases an email address.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether email is a syntactically valid address.
func IsValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
