package services

import (
	"strings"

	"convo/internal/common"
)

// phoneSeparators are stripped before the digit check; a single leading '+'
// is also allowed.
var phoneSeparators = strings.NewReplacer("-", "", " ", "", "(", "", ")", "")

// ValidatePhoneNumber checks the registration phone rule: after stripping
// separators and a leading '+', the value must be a digit string of at
// least 10 characters. The stored value keeps its original formatting.
func ValidatePhoneNumber(value string) error {
	cleaned := phoneSeparators.Replace(value)
	cleaned = strings.TrimPrefix(cleaned, "+")

	if len(cleaned) < 10 {
		return common.NewValidationError("phone_number", "must contain at least 10 digits")
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return common.NewValidationError("phone_number", "must contain only digits and separators")
		}
	}
	return nil
}

// validateEmail normalizes an email to lower case and rejects values with
// no '@' or surrounding whitespace garbage.
func validateEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return "", common.NewValidationError("email", "invalid email format")
	}
	return email, nil
}

func validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return common.NewValidationError(field, "is required")
	}
	if len(value) > 30 {
		return common.NewValidationError(field, "must be at most 30 characters")
	}
	return nil
}
