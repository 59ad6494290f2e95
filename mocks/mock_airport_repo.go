package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flight-intent-service/internal/domain/entity"
)

// MockAirportRepo is a mock implementation of repository.AirportRepository.
type MockAirportRepo struct {
	mock.Mock
}

func (m *MockAirportRepo) FindByCity(ctx context.Context, city string) ([]entity.Airport, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Airport), args.Error(1)
}
