package bookingflow

import (
	"errors"
	"regexp"
	"strings"
)

// Input-hygiene checks only: the backend never sees a real PAN, and nothing
// here talks to a card network.

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

var (
	errCardNumber = errors.New("card number must be 16 digits")
	errCardName   = errors.New("cardholder name must be at least 3 characters")
	errCardExpiry = errors.New("expiry must be in MM/YY format")
	errCardCVV    = errors.New("cvv must be 3 digits")
)

// CardInput is what the user types at the payment prompt.
type CardInput struct {
	Number     string
	HolderName string
	Expiry     string
	CVV        string
}

// Validate applies the cosmetic checks the payment form performs, each
// failure with its own message.
func (c CardInput) Validate() error {
	if !isDigits(stripSpaces(c.Number), 16) {
		return errCardNumber
	}
	if len(strings.TrimSpace(c.HolderName)) < 3 {
		return errCardName
	}
	if len(c.Expiry) != 5 || !expiryPattern.MatchString(c.Expiry) {
		return errCardExpiry
	}
	if !isDigits(c.CVV, 3) {
		return errCardCVV
	}
	return nil
}

// Masked returns the display string stored with the payment, keeping only
// the last four digits.
func (c CardInput) Masked() string {
	digits := stripSpaces(c.Number)
	if len(digits) < 4 {
		return ""
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// FormatCardNumber regroups a PAN into space-separated blocks of four for
// echo display, dropping any non-digit input.
func FormatCardNumber(number string) string {
	var b strings.Builder
	n := 0
	for _, r := range number {
		if r < '0' || r > '9' {
			continue
		}
		if n > 0 && n%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

func stripSpaces(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r != ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
