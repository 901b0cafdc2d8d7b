package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Usernames live in users.username VARCHAR(32) and are stored lowercased,
// so "Alice" and "alice" name the same account.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
)

var (
	// letter or digit first, then letters, digits or underscores
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_]*$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateUsername checks the name a user signs in with, ignoring surrounding spaces.
func ValidateUsername(username string) error {
	name := strings.TrimSpace(username)
	if n := len(name); n < MinUsernameLength || n > MaxUsernameLength {
		return &ValidationError{Field: "username", Message: fmt.Sprintf("Username must be %d to %d characters long", MinUsernameLength, MaxUsernameLength)}
	}
	if !usernamePattern.MatchString(name) {
		return &ValidationError{Field: "username", Message: "Username may contain letters, digits and underscores, and must not start with an underscore"}
	}
	return nil
}

// ValidateEmail checks the address has a plausible shape. It is never verified.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &ValidationError{Field: "email", Message: "Invalid email address"}
	}
	return nil
}

// NormalizeUsername is the stored and looked-up form of a username.
func NormalizeUsername(username string) string {
	return fold(username)
}

// NormalizeEmail is the stored form of an email, unique case-insensitively.
func NormalizeEmail(email string) string {
	return fold(email)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
