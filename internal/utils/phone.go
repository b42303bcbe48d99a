package utils

import (
	"fmt"
	"strings"
)

// NormalizePhoneNumber cleans a phone number into its canonical +<digits>
// form so wallet lookups by phone number are deterministic regardless of
// how the caller formatted the input.
func NormalizePhoneNumber(phone string) (string, error) {
	stripped := strings.ReplaceAll(phone, "-", "")
	stripped = strings.ReplaceAll(stripped, " ", "")
	stripped = strings.ReplaceAll(stripped, "(", "")
	stripped = strings.ReplaceAll(stripped, ")", "")
	stripped = strings.TrimPrefix(stripped, "+")

	if stripped == "" {
		return "", fmt.Errorf("phone number is empty")
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("phone number contains invalid characters")
		}
	}
	if len(stripped) < 10 || len(stripped) > 15 {
		return "", fmt.Errorf("phone number must have 10 to 15 digits")
	}

	return "+" + stripped, nil
}
