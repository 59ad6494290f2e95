package iata

import (
	"context"

	"flight-intent-service/internal/domain/repository"
	"flight-intent-service/pkg/logger"
)

// LocalFirstLookup answers from the airport master table and only asks the
// next lookup when the table has no usable row for the city.
type LocalFirstLookup struct {
	airports repository.AirportRepository
	next     repository.AirportCodeLookup
	logger   logger.Logger
}

// NewLocalFirstLookup creates a new local-first lookup
func NewLocalFirstLookup(airports repository.AirportRepository, next repository.AirportCodeLookup, logger logger.Logger) *LocalFirstLookup {
	return &LocalFirstLookup{
		airports: airports,
		next:     next,
		logger:   logger,
	}
}

// LookupIATA implements repository.AirportCodeLookup. A failing table read
// is logged and falls through to the next lookup.
func (l *LocalFirstLookup) LookupIATA(ctx context.Context, city string, preferred []string) (string, error) {
	candidates, err := l.airports.FindByCity(ctx, city)
	if err != nil {
		l.logger.Warn("Airport table lookup failed", "city", city, "error", err)
	} else if code := SelectAirport(candidates, preferred); code != "" {
		l.logger.Debug("Airport code found locally", "city", city, "code", code)
		return code, nil
	}

	return l.next.LookupIATA(ctx, city, preferred)
}
