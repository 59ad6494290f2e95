// Package iata resolves city names to IATA airport codes through external
// code services, the local airport master table and a redis cache.
package iata

import (
	"errors"
	"regexp"
	"strings"

	"flight-intent-service/internal/domain/entity"
)

// ErrUnavailable is returned when a code service cannot be used at all, for
// example because its credentials are not configured.
var ErrUnavailable = errors.New("airport code service unavailable")

var codeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// SelectAirport picks one code among candidates. Candidates in a preferred
// country win when there are any; among those left the city-wide "all
// airports" entry wins, otherwise the first one listed. Entries without a
// valid three-letter code are ignored. Returns "" when nothing qualifies.
func SelectAirport(candidates []entity.Airport, preferred []string) string {
	valid := make([]entity.Airport, 0, len(candidates))
	for _, c := range candidates {
		c.IATA = strings.ToUpper(strings.TrimSpace(c.IATA))
		if codeRe.MatchString(c.IATA) {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return ""
	}

	pool := valid
	if len(preferred) > 0 {
		var filtered []entity.Airport
		for _, c := range valid {
			if isPreferred(c.CountryCode, preferred) {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	for _, c := range pool {
		if c.IsAllAirports() {
			return c.IATA
		}
	}
	return pool[0].IATA
}

func isPreferred(country string, preferred []string) bool {
	for _, p := range preferred {
		if strings.EqualFold(country, p) {
			return true
		}
	}
	return false
}
