package repository

import (
	"context"

	"flight-intent-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline master data
type AirlineRepository interface {
	ListAll(ctx context.Context) ([]*entity.Airline, error)
}
