package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeText is used for party names, places and the recommender.
func NormalizeText(s string) string {
	return TrimAndNormalize(stripControl(s))
}

// NormalizeBusName returns the trimmed name; matching against the fleet is
// case-insensitive so case is left alone.
func NormalizeBusName(name string) string {
	return TrimAndNormalize(name)
}

var rePickupTime = regexp.MustCompile(`^(\d{1,2})(?::?(\d{2}))?\s*([AaPp])\.?\s*[Mm]\.?$`)

// NormalizePickupTime rewrites "9pm", "09:00 pm" and similar into "9:00 PM".
// Unrecognised input is returned trimmed.
func NormalizePickupTime(s string) string {
	s = TrimAndNormalize(s)
	m := rePickupTime.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	hour := strings.TrimLeft(m[1], "0")
	if hour == "" {
		hour = "0"
	}
	minutes := m[2]
	if minutes == "" {
		minutes = "00"
	}
	return hour + ":" + minutes + " " + strings.ToUpper(m[3]) + "M"
}
