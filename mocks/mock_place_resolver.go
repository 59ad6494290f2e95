package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flight-intent-service/internal/domain/entity"
)

// MockPlaceResolver is a mock implementation of repository.PlaceResolver.
type MockPlaceResolver struct {
	mock.Mock
}

func (m *MockPlaceResolver) ResolvePlace(ctx context.Context, text, countryHint, language string) entity.Place {
	args := m.Called(ctx, text, countryHint, language)
	return args.Get(0).(entity.Place)
}
