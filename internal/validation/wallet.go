// Package validation holds input checks shared by handlers and services.
package validation

import (
	"strings"

	domainerr "kolo/internal/errors"
)

const (
	pinMinLen = 4
	pinMaxLen = 6
)

// ValidatePIN checks the 4-6 digit numeric PIN format.
func ValidatePIN(pin string) error {
	if len(pin) < pinMinLen || len(pin) > pinMaxLen {
		return domainerr.ErrInvalidPIN
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return domainerr.ErrInvalidPIN
		}
	}
	return nil
}

// ValidateAmount rejects non-positive principals before any fee math runs.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return domainerr.ErrInvalidAmount
	}
	return nil
}

// ValidateRejectionReason enforces the mandatory non-empty reason on
// rejections.
func ValidateRejectionReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return domainerr.ErrRejectionReasonRequired
	}
	return nil
}

// ValidatePhoneNumber does a light sanity check on the mobile-money number
// supplied by the requester.
func ValidatePhoneNumber(phone string) error {
	cleaned := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if len(cleaned) < 8 || len(cleaned) > 15 {
		return domainerr.ErrInvalidPhoneNumber
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return domainerr.ErrInvalidPhoneNumber
		}
	}
	return nil
}
