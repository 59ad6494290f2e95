package entity

import (
	"strings"
)

// Airport is one candidate returned by an airport code source.
type Airport struct {
	IATA        string
	Name        string
	CityName    string
	CountryCode string
	// AllAirports marks the umbrella entry covering every airport of a city.
	AllAirports bool
}

// IsAllAirports reports whether the listing names the city umbrella entry.
func (a Airport) IsAllAirports() bool {
	if a.AllAirports {
		return true
	}
	name := strings.ToLower(a.Name)
	return strings.Contains(name, "all airports") || strings.Contains(name, "todos los aeropuertos")
}
