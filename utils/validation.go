package utils

import (
	"strings"

	"useradmin/models"
)

// ValidationError marks a failure that should surface as a 400 rather than
// a 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidatePassword enforces the minimum password length for self-service
// password changes.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{Message: "Password must be at least 8 characters."}
	}
	return nil
}

// ValidateGroup rejects groups outside the three recognized values.
func ValidateGroup(group string) error {
	if !models.ValidGroup(group) {
		return &ValidationError{Message: "'group' must be one of Administrator, Manager, User."}
	}
	return nil
}

// NormalizeEmail trims and lowercases an email for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
