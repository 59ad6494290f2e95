package intent

import (
	"regexp"
	"strings"

	"flight-intent-service/pkg/textnorm"
)

// maxCountryTokens is the longest country alias, in words.
const maxCountryTokens = 3

// ExtractCountryHint looks in the original message for a country qualifier
// right after city, as in "Roma, Italia", "Roma - Italia" or "Roma (IT)",
// and returns its ISO alpha-2 code. It returns "" when city is empty or no
// qualifier resolves.
func ExtractCountryHint(original, city string) string {
	city = textnorm.Clean(city)
	if city == "" {
		return ""
	}

	quoted := strings.ReplaceAll(regexp.QuoteMeta(city), " ", `\s+`)
	re, err := regexp.Compile(`(?i)(?:^|[^\p{L}])` + quoted +
		`(?:\s*(?:,|\s-)\s*([\p{L}][\p{L}\s]*)|\s*\(\s*([^)]*)\))`)
	if err != nil {
		return ""
	}

	for _, m := range re.FindAllStringSubmatch(original, -1) {
		phrase := m[1]
		if phrase == "" {
			phrase = m[2]
		}
		if code, ok := countryFromPhrase(phrase); ok {
			return code
		}
	}
	return ""
}

// countryFromPhrase looks up the longest leading run of words in phrase that
// names a country; anything after it (prepositions, dates) is ignored.
func countryFromPhrase(phrase string) (string, bool) {
	var tokens []string
	for _, tok := range textnorm.Tokens(phrase) {
		if tok = strings.Trim(tok, ".,;:"); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	code, n := matchCountryPrefix(tokens)
	return code, n > 0
}

// matchCountryPrefix returns the code of the longest leading run of tokens
// naming a country, and how many tokens it used.
func matchCountryPrefix(tokens []string) (string, int) {
	limit := len(tokens)
	if limit > maxCountryTokens {
		limit = maxCountryTokens
	}
	for n := limit; n > 0; n-- {
		if code, ok := CountryCode(strings.Join(tokens[:n], " ")); ok {
			return code, n
		}
	}
	return "", 0
}
