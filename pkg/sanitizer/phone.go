package sanitizer

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "IN"

// NormalizePhone reduces a phone number to its national significant number
// for India, so "+91 98765 43210" and "098765-43210" both become
// "9876543210". Input that does not parse is reduced to its digits.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err == nil && int(parsed.GetCountryCode()) == phonenumbers.GetCountryCodeForRegion(defaultRegion) {
		return phonenumbers.GetNationalSignificantNumber(parsed)
	}
	return digitsOnly(phone)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < 128 {
			return r
		}
		return -1
	}, s)
}
