package identity

import (
	"regexp"
	"strings"
)

var rePhone = regexp.MustCompile(`^\+92[0-9]{10}$`)

// FormatPhoneNumber normalizes local input to +92XXXXXXXXXX.
func FormatPhoneNumber(input string) string {
	input = strings.TrimSpace(input)
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case strings.HasPrefix(digits, "92"):
		return "+" + digits
	case strings.HasPrefix(digits, "0"):
		return "+92" + digits[1:]
	default:
		return "+92" + digits
	}
}

func ValidPhone(phone string) bool { return rePhone.MatchString(phone) }

var reOTP = regexp.MustCompile(`^[0-9]{6}$`)

func ValidOTP(code string) bool { return reOTP.MatchString(code) }
