// Package phone canonicalizes customer phone numbers so that the same number
// always hits the same uniqueness key, however the caller typed it.
package phone

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// DefaultRegion is the region used for numbers entered without a country code.
const DefaultRegion = "KR"

// Normalize returns the E.164 form of raw when it parses as a valid phone
// number, and otherwise falls back to the raw digits. The fallback keeps
// free-form entries (short internal numbers, foreign formats the parser
// rejects) usable as lookup keys instead of failing the whole request.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	num, err := libphonenumber.Parse(trimmed, DefaultRegion)
	if err == nil && libphonenumber.IsValidNumber(num) {
		return libphonenumber.Format(num, libphonenumber.E164)
	}

	return digits(trimmed)
}

func digits(s string) string {
	var b strings.Builder

	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
