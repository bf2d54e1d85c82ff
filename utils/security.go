package utils

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the password. The salt is random per
// call, so hashing the same password twice yields different outputs.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
// An empty stored hash never matches. A bcrypt mismatch is (false, nil);
// any other comparison failure is returned as an error.
func CheckPasswordHash(password, hash string) (bool, error) {
	if hash == "" {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("comparing password hash: %w", err)
}

// GenerateSessionID returns a new opaque session identifier.
func GenerateSessionID() string {
	return uuid.NewString()
}
