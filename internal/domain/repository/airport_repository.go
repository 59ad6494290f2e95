package repository

import (
	"context"

	"flight-intent-service/internal/domain/entity"
)

// AirportRepository defines the interface for the local airport master table
type AirportRepository interface {
	FindByCity(ctx context.Context, city string) ([]entity.Airport, error)
}

// AirportCodeLookup resolves a city name to a three-letter IATA code.
// preferred lists ISO country codes used to disambiguate homonymous cities.
type AirportCodeLookup interface {
	LookupIATA(ctx context.Context, city string, preferred []string) (string, error)
}

// PlaceResolver cleans a free-text place name and finds its country. It never
// fails: on any problem it returns the input text and hint unchanged.
type PlaceResolver interface {
	ResolvePlace(ctx context.Context, text, countryHint, language string) entity.Place
}
