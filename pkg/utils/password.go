package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost matches the salt rounds the existing accounts were hashed with.
const PasswordCost = 10

const MinPasswordLength = 6

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hashedPassword.
// A mismatch is not an error; a malformed hash is.
func VerifyPassword(password, hashedPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// ValidatePassword checks the minimum password rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	if len(password) > 72 {
		// bcrypt ignores everything past 72 bytes
		return &ValidationError{Field: "password", Message: "Password must be at most 72 bytes"}
	}
	return nil
}
