// Package textnorm holds the whitespace, case and accent helpers shared by the
// extraction pipeline. Folded strings are matching keys only; display values
// are always derived from the caller's original text.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var spaceRun = regexp.MustCompile(`\s+`)

// Clean collapses every whitespace run to a single space and trims the ends.
func Clean(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// Fold lower-cases s and strips combining accents: "París" -> "paris".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(Clean(folded))
}

// Title upper-cases the first rune of every space separated word and
// lower-cases the rest.
func Title(s string) string {
	words := strings.Split(Clean(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Tokens splits s on whitespace.
func Tokens(s string) []string {
	return strings.Fields(s)
}

// IsAlphabetic reports whether token is made only of letters and hyphens and
// carries at least one letter.
func IsAlphabetic(token string) bool {
	hasLetter := false
	for _, r := range token {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == '-':
		default:
			return false
		}
	}
	return hasLetter
}

// Excise replaces s[start:end] with a single space and re-cleans the result.
func Excise(s string, start, end int) string {
	if start < 0 || end > len(s) || start >= end {
		return s
	}
	return Clean(s[:start] + " " + s[end:])
}
