package utils

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// Normalize lower-cases s and strips combining marks, so "CÁMARA" and "camara" compare equal.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	return strings.ToLower(out)
}

// ContainsFold reports whether needle occurs in haystack after both are normalized.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// FormatPrice renders an amount as US dollars, e.g. "$1,234.50". Non-finite amounts render as "$0.00".
func FormatPrice(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	if amount < 0 {
		return "-$" + pricePrinter.Sprintf("%.2f", -amount)
	}

	return "$" + pricePrinter.Sprintf("%.2f", amount)
}
