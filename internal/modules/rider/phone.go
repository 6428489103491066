// README: Phone number normalization for emergency contacts and driver numbers.
package rider

import (
	"errors"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone strips formatting punctuation and returns an E.164-ish
// number. Ten-digit national numbers get the +1 country code; numbers already
// carrying a country code keep it.
func NormalizePhone(raw string) (string, error) {
	stripped := strings.Map(func(c rune) rune {
		switch c {
		case ' ', '(', ')', '-', '.':
			return -1
		}
		return c
	}, raw)

	hasPlus := strings.HasPrefix(stripped, "+")
	digits := strings.TrimPrefix(stripped, "+")
	if digits == "" {
		return "", ErrInvalidPhone
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", ErrInvalidPhone
		}
	}

	if hasPlus {
		return "+" + digits, nil
	}
	if len(digits) == 10 {
		return "+1" + digits, nil
	}
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		return "+" + digits, nil
	}
	return "", ErrInvalidPhone
}
