package models

import (
	"regexp"
	"strings"
)

const countryCode = "250"

var localMobile = regexp.MustCompile(`^7[2389]\d{7}$`)

// NormalizePhone accepts local (07xxxxxxxx) and international (+2507xxxxxxxx) mobile
// numbers with any punctuation and returns the canonical 2507xxxxxxxx form.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, countryCode) && len(digits) == len(countryCode)+9 {
		digits = digits[len(countryCode):]
	}
	digits = strings.TrimPrefix(digits, "0")
	if !localMobile.MatchString(digits) {
		return "", false
	}
	return countryCode + digits, true
}
