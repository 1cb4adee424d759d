package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reItemID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	} // clamp to avoid abuse
	return n
}

// ItemID validates a cart item identifier ("p-<n>").
func ItemID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reItemID.MatchString(s)
}

func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Password enforces the registration policy; login only checks presence.
func Password(s string) bool {
	if len(s) < 8 || len(s) > 64 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
			hasLetter = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// PaymentMethod normalizes to one of card|pse|cod; card is the default
// the way the payment page preselects it.
func PaymentMethod(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return "card", true
	case "card", "pse", "cod":
		return s, true
	}
	return "", false
}

// Fulfillment normalizes to pickup|delivery, defaulting to pickup.
func Fulfillment(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return "pickup", true
	case "pickup", "delivery":
		return s, true
	}
	return "", false
}
