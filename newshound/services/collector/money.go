package collector

import (
	"regexp"
	"strings"
)

// Amount shapes recognized as money: "$11.1", "$111,111.11",
// "11 dollars", "11 USD". Thousands beyond three digits must be comma
// grouped, so "$1111.1" is not money. Unit words are case-sensitive.
// Each pattern anchors on a non-digit (or string edge) on both sides of
// the number so digit runs cannot bleed into a match.
var moneyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(^|[^0-9])\$[0-9]{1,3}(,[0-9]{3})*(\.[0-9]+)?([^0-9]|$)`),
	regexp.MustCompile(`(^|[^0-9])[0-9]{1,3}(,[0-9]{3})*(\.[0-9]+)?\s(dollars|USD)`),
}

// MatchesMoney reports whether text contains a currency amount.
func MatchesMoney(text string) bool {
	for _, p := range moneyPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// CountPhrase counts case-insensitive occurrences of phrase across the
// given fields.
func CountPhrase(phrase string, fields ...string) int {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return 0
	}
	count := 0
	for _, f := range fields {
		count += strings.Count(strings.ToLower(f), phrase)
	}
	return count
}
