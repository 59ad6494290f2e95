package intent

import (
	"regexp"
	"strings"

	"flight-intent-service/pkg/textnorm"
)

// maxCityTokens caps a cleaned city phrase.
const maxCityTokens = 3

// RouteMatch holds the cleaned origin and destination phrases. Empty means
// absent.
type RouteMatch struct {
	Origin      string
	Destination string
}

const cityPhrase = `[\p{L}][\p{L}\-]*(?:\s+[\p{L}][\p{L}\-]*)*`

var (
	fromToRouteRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:desde|de)\s+(` + cityPhrase + `)\s+a\s+(` + cityPhrase + `)`)
	toRouteRe     = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:(` + cityPhrase + `)\s+)?a\s+(` + cityPhrase + `)`)

	routeSplitRe = regexp.MustCompile(`(?i)\s+a\s+`)

	parenQualifierRe    = regexp.MustCompile(`\s*\([^)]*\)`)
	trailingQualifierRe = regexp.MustCompile(`\s*(?:,|\s-)\s*([\p{L}]+(?:\s+[\p{L}]+){0,2})`)
)

// ExtractRoute finds the origin and destination in text that already had the
// date, airline and quantity removed. "de|desde X a Y" is preferred over a
// bare "X a Y"; with several candidates the last one wins.
func ExtractRoute(text string) RouteMatch {
	text = stripCountryQualifiers(text)

	for _, re := range []*regexp.Regexp{fromToRouteRe, toRouteRe} {
		matches := re.FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		m := matches[len(matches)-1]
		var route RouteMatch
		if m[2] >= 0 {
			route.Origin = CleanCityPhrase(text[m[2]:m[3]])
		}
		route.Destination = CleanCityPhrase(text[m[4]:m[5]])
		if route.Destination == "" {
			start := m[4]
			if m[2] >= 0 {
				start = m[2]
			}
			if split, ok := splitEarlier(text[start:m[5]], re == fromToRouteRe); ok {
				return split
			}
		}
		return route
	}

	return RouteMatch{}
}

// splitEarlier handles a greedy origin that swallowed the destination, as in
// "Quito a Madrid a las": it tries each "a" from the left and keeps the first
// split leaving a destination, and an origin when one is required.
func splitEarlier(span string, needOrigin bool) (RouteMatch, bool) {
	for _, loc := range routeSplitRe.FindAllStringIndex(span, -1) {
		route := RouteMatch{
			Origin:      CleanCityPhrase(span[:loc[0]]),
			Destination: CleanCityPhrase(span[loc[1]:]),
		}
		if route.Destination != "" && (route.Origin != "" || !needOrigin) {
			return route, true
		}
	}
	return RouteMatch{}, false
}

// CleanCityPhrase keeps the alphabetic tokens of phrase, trims stopwords from
// both ends until none is left there, title-cases the rest and keeps at most
// three tokens. Returns "" when nothing is left.
func CleanCityPhrase(phrase string) string {
	var tokens []string
	for _, tok := range textnorm.Tokens(phrase) {
		if textnorm.IsAlphabetic(tok) {
			tokens = append(tokens, tok)
		}
	}

	for len(tokens) > 0 && !startsWithArticleCity(tokens) && stopwords.has(tokens[0]) {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && stopwords.has(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) > maxCityTokens {
		tokens = tokens[:maxCityTokens]
	}
	return textnorm.Title(strings.Join(tokens, " "))
}

func startsWithArticleCity(tokens []string) bool {
	if len(tokens) < 2 {
		return false
	}
	_, ok := articleCities[textnorm.Fold(tokens[0]+" "+tokens[1])]
	return ok
}

// stripCountryQualifiers drops "(...)" groups and ", <country>" or
// " - <country>" tails so they do not split or extend a city phrase.
func stripCountryQualifiers(text string) string {
	text = parenQualifierRe.ReplaceAllString(text, " ")
	text = trailingQualifierRe.ReplaceAllStringFunc(text, func(s string) string {
		m := trailingQualifierRe.FindStringSubmatch(s)
		tokens := textnorm.Tokens(m[1])
		if _, n := matchCountryPrefix(tokens); n > 0 {
			return " " + strings.Join(tokens[n:], " ")
		}
		return s
	})
	return textnorm.Clean(text)
}
