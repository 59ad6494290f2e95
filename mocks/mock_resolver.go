package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flight-intent-service/internal/domain/entity"
)

// MockResolver is a mock implementation of usecase.Resolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, in entity.BookingIntent) entity.BookingRequest {
	args := m.Called(ctx, in)
	return args.Get(0).(entity.BookingRequest)
}
