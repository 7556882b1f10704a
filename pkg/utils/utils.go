package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidEmail is returned when an email address is malformed.
var ErrInvalidEmail = errors.New("invalid email address")

// NormalizeEmail returns the trimmed, lowercased form of email. It returns
// ErrInvalidEmail if email has no local part, no domain, more than one @ or
// any whitespace.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	for _, r := range email {
		if unicode.IsSpace(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
		}
	}

	return email, nil
}

// ValidateIdentifier returns an error if name can't be used unquoted as a
// SQL schema or table name.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier cannot be empty")
	}

	if r := rune(name[0]); !unicode.IsLetter(r) && r != '_' {
		return fmt.Errorf("identifier must start with a letter or an underscore")
	}

	for _, r := range name {
		if r > unicode.MaxASCII || (!unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_') {
			return fmt.Errorf("identifier can only contain letters, numbers, and underscores")
		}
	}

	return nil
}
