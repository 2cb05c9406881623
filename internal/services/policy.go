package services

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrRegistrationIncomplete = errors.New("all fields are required")
	ErrWeakPassword           = errors.New("weak password")
)

const minPasswordLength = 8

// NormalizeUsername trims surrounding space. Usernames stay case-sensitive,
// as they always have been.
func NormalizeUsername(raw string) string {
	return strings.TrimSpace(raw)
}

func NormalizeCredentialsInput(usernameRaw string, password string) (string, string, error) {
	username := NormalizeUsername(usernameRaw)
	if username == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return username, password, nil
}

// ValidatePasswordStrength requires a minimum length with at least one letter
// and one digit.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrWeakPassword
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if hasLetter && hasDigit {
		return nil
	}
	return ErrWeakPassword
}
