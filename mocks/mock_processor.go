package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/usecase"
)

// MockProcessor is a mock implementation of usecase.Processor.
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Process(ctx context.Context, sub usecase.Submission) (*entity.BookingLog, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BookingLog), args.Error(1)
}
