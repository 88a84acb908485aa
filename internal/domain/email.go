package domain

import (
	"net/mail"
	"strings"

	"github.com/lalith-99/docuvault/internal/result"
)

// Email is a validated email address. The zero value is invalid; the
// only way to obtain a usable Email is through ParseEmail, so any Email
// reached through a User entity has already passed validation.
type Email struct {
	address string
}

// ParseEmail validates and normalizes a raw address. The address must
// be a bare RFC 5322 addr-spec; display names are rejected.
func ParseEmail(raw string) result.Result[Email] {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return result.Err[Email](ErrInvalidEmail)
	}
	parsed, err := mail.ParseAddress(trimmed)
	if err != nil || parsed.Address != trimmed {
		return result.Err[Email](ErrInvalidEmail)
	}
	return result.Ok(Email{address: strings.ToLower(parsed.Address)})
}

func (e Email) String() string {
	return e.address
}

func (e Email) IsZero() bool {
	return e.address == ""
}
