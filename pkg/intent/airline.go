package intent

import (
	"regexp"
	"strconv"
	"strings"

	"flight-intent-service/pkg/textnorm"
)

// maxAirlineChars bounds the text captured after the "con" marker.
const maxAirlineChars = 40

// AirlineMatch is an airline found in a message with the byte span that
// introduced it (marker word included).
type AirlineMatch struct {
	Name  string
	Start int
	End   int
}

// Found reports whether an airline was matched.
func (m AirlineMatch) Found() bool { return m.Name != "" }

var (
	airlineMarkerRe   = regexp.MustCompile(`(?i)\bcon\s+([\p{L}\p{N}][\p{L}\p{N}\s.\-]{0,` + strconv.Itoa(maxAirlineChars-1) + `})`)
	airlineBoundaryRe = regexp.MustCompile(`(?i)(?:^|\s)(?:` + strings.Join(airlineBoundaryWords, "|") + `)(?:\s|$)`)
)

// MatchAirline finds an airline in text: first a name introduced by "con",
// otherwise a known airline name anywhere in the text.
func (l *Lexicon) MatchAirline(text string) AirlineMatch {
	if m := airlineMarkerRe.FindStringSubmatchIndex(text); m != nil {
		capture := text[m[2]:m[3]]
		// A known name may itself contain a boundary word ("Cubana de Aviación").
		if p := l.airlinePrefixRe.FindStringSubmatchIndex(capture); p != nil {
			display, _ := l.AirlineDisplayName(textnorm.Clean(capture[p[2]:p[3]]))
			return AirlineMatch{Name: display, Start: m[0], End: m[2] + p[3]}
		}
		if b := airlineBoundaryRe.FindStringIndex(capture); b != nil {
			capture = capture[:b[0]]
		}
		name := strings.TrimRight(capture, " .-")
		if name != "" {
			display, known := l.AirlineDisplayName(name)
			if !known {
				display = textnorm.Title(name)
			}
			return AirlineMatch{Name: display, Start: m[0], End: m[2] + len(name)}
		}
	}

	if m := l.airlineRe.FindStringSubmatchIndex(text); m != nil {
		display, _ := l.AirlineDisplayName(textnorm.Clean(text[m[2]:m[3]]))
		return AirlineMatch{Name: display, Start: m[2], End: m[3]}
	}

	return AirlineMatch{}
}

// ExtractAirline matches an airline and returns text without its span.
// Text is returned unchanged when nothing matched.
func (l *Lexicon) ExtractAirline(text string) (AirlineMatch, string) {
	m := l.MatchAirline(text)
	return m, RemoveAirline(text, m)
}

// RemoveAirline excises the span of m from text. Removing an absent airline
// is a no-op.
func RemoveAirline(text string, m AirlineMatch) string {
	if !m.Found() {
		return text
	}
	return textnorm.Excise(text, m.Start, m.End)
}

// ExtractAirline runs the built-in lexicon.
func ExtractAirline(text string) (AirlineMatch, string) {
	return defaultLexicon.ExtractAirline(text)
}
