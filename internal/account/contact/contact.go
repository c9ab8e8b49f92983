// Package contact holds the normalized email and phone value objects shared
// by the account flows. Pure data and validation; no I/O.
package contact

import (
	"net/mail"
	"strings"

	dErrors "worldsmith/pkg/domain-errors"
)

// MaxEmailLength mirrors the directory's storage bound for email addresses.
const MaxEmailLength = 255

// Email is a normalized email address with its verification flag.
type Email struct {
	Address  string
	Verified bool
}

// NewEmail validates and normalizes an address. The verified flag is left
// false; callers mark it after a proof of ownership.
func NewEmail(address string) (Email, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Email{}, dErrors.New(dErrors.CodeValidation, "email address is required").
			WithDetails("field", "email_address")
	}
	if len(address) > MaxEmailLength {
		return Email{}, dErrors.New(dErrors.CodeValidation, "email address is too long").
			WithDetails("field", "email_address")
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return Email{}, dErrors.New(dErrors.CodeValidation, "email address is not valid").
			WithDetails("field", "email_address")
	}
	return Email{Address: address}, nil
}

// IsValidEmail reports whether the address would pass NewEmail.
func IsValidEmail(address string) bool {
	_, err := NewEmail(address)
	return err == nil
}

func (e Email) Equal(other Email) bool {
	return e.Address == other.Address && e.Verified == other.Verified
}
