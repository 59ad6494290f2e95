package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"flight-intent-service/pkg/textnorm"
)

// DateKind tells which surface form a date expression was matched in.
type DateKind int

const (
	DateNone      DateKind = iota
	DateNumeric            // 15-08-2026
	DateDayMonth           // 15 de agosto [de 2026]
	DateMonthOnly          // en agosto
)

// DateMatch is the raw date expression found in a message.
type DateMatch struct {
	Kind DateKind
	Raw  string
}

// Found reports whether a date expression was matched.
func (m DateMatch) Found() bool { return m.Kind != DateNone }

var (
	numericDateRe  = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`)
	dayMonthDateRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+de\s+(` + monthAlternation() + `)(?:\s+de\s+(\d{4}))?\b`)
	monthOnlyRe    = regexp.MustCompile(`(?i)\b(?:en|para)\s+(?:el\s+mes\s+de\s+)?(` + monthAlternation() + `)\b`)
)

// ExtractDate finds the first date expression in text, trying the numeric,
// day-month and month-only forms in that order, and returns it together with
// text minus the matched span.
func ExtractDate(text string) (DateMatch, string) {
	if m := numericDateRe.FindStringSubmatchIndex(text); m != nil {
		raw := fmt.Sprintf("%s-%s-%s", text[m[2]:m[3]], text[m[4]:m[5]], text[m[6]:m[7]])
		return DateMatch{Kind: DateNumeric, Raw: raw}, textnorm.Excise(text, m[0], m[1])
	}

	if m := dayMonthDateRe.FindStringSubmatchIndex(text); m != nil {
		raw := text[m[2]:m[3]] + " de " + strings.ToLower(text[m[4]:m[5]])
		if m[6] >= 0 {
			raw += " de " + text[m[6]:m[7]]
		}
		return DateMatch{Kind: DateDayMonth, Raw: raw}, textnorm.Excise(text, m[0], m[1])
	}

	if m := monthOnlyRe.FindStringSubmatchIndex(text); m != nil {
		raw := strings.ToLower(text[m[2]:m[3]])
		return DateMatch{Kind: DateMonthOnly, Raw: raw}, textnorm.Excise(text, m[0], m[1])
	}

	return DateMatch{}, text
}

// DateLayout is the canonical output format of NormalizeDate.
const DateLayout = "02-01-2006"

var (
	canonicalNumericRe  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	canonicalDayMonthRe = regexp.MustCompile(`^(?:(?:el|para el|en)\s+)?(\d{1,2})\s+de\s+([a-z]+)(?:\s+de(?:l)?\s+(\d{4}))?$`)
	canonicalMonthRe    = regexp.MustCompile(`^(?:(?:en|para)\s+)?(?:el\s+mes\s+de\s+)?([a-z]+)$`)
)

// NormalizeDate converts a raw date expression to dd-mm-yyyy. Missing years
// are resolved against today: a day or month that has already passed this
// year rolls over to the next one. A month without a day means its first day.
// Unrecognized or impossible dates return false.
func NormalizeDate(raw string, today time.Time) (string, bool) {
	s := textnorm.Fold(raw)
	if s == "" {
		return "", false
	}

	if m := canonicalNumericRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return formatDate(day, month, year)
	}

	if m := canonicalDayMonthRe.FindStringSubmatch(s); m != nil {
		month, ok := months[m[2]]
		if !ok {
			return "", false
		}
		day, _ := strconv.Atoi(m[1])
		var year int
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		} else {
			year = today.Year()
			if month < int(today.Month()) || (month == int(today.Month()) && day < today.Day()) {
				year++
			}
		}
		return formatDate(day, month, year)
	}

	if m := canonicalMonthRe.FindStringSubmatch(s); m != nil {
		month, ok := months[m[1]]
		if !ok {
			return "", false
		}
		year := today.Year()
		if month < int(today.Month()) {
			year++
		}
		return formatDate(1, month, year)
	}

	return "", false
}

func formatDate(day, month, year int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 31-02 into March; reject instead.
	if t.Day() != day || int(t.Month()) != month {
		return "", false
	}
	return t.Format(DateLayout), true
}
