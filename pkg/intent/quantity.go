package intent

import (
	"regexp"
	"strconv"
	"strings"

	"flight-intent-service/pkg/textnorm"
)

// QuantityMatch is a passenger count tied to a ticket or passenger noun.
// Start and End delimit the number token only.
type QuantityMatch struct {
	Count int
	Start int
	End   int
}

// Found reports whether a passenger count was matched.
func (m QuantityMatch) Found() bool { return m.Count > 0 }

var (
	ticketNounPattern = `(?:` + strings.Join(ticketNouns, "|") + `)`
	digitQuantityRe   = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(\d{1,2})\s*` + ticketNounPattern + `(?:[^\p{L}\p{N}]|$)`)
	wordQuantityRe    = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + numberWordAlternation() + `)\s+` + ticketNounPattern + `(?:[^\p{L}\p{N}]|$)`)
)

// MatchQuantity finds a number immediately followed by a ticket or passenger
// noun. Digits are tried before spelled-out cardinals. A number on its own,
// such as the day of a date, is never taken as a count.
func MatchQuantity(text string) QuantityMatch {
	if m := digitQuantityRe.FindStringSubmatchIndex(text); m != nil {
		n, err := strconv.Atoi(text[m[2]:m[3]])
		if err == nil && n > 0 {
			return QuantityMatch{Count: n, Start: m[2], End: m[3]}
		}
	}

	if m := wordQuantityRe.FindStringSubmatchIndex(text); m != nil {
		if n, ok := numberWords[strings.ToLower(text[m[2]:m[3]])]; ok {
			return QuantityMatch{Count: n, Start: m[2], End: m[3]}
		}
	}

	return QuantityMatch{}
}

// ExtractQuantity matches a passenger count and returns text without the
// number token. The noun stays so the route pass sees it as a stopword.
func ExtractQuantity(text string) (QuantityMatch, string) {
	m := MatchQuantity(text)
	if !m.Found() {
		return m, text
	}
	return m, textnorm.Excise(text, m.Start, m.End)
}
