package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flight-intent-service/internal/domain/entity"
)

// MockBookingLogRepo is a mock implementation of repository.BookingLogRepository.
type MockBookingLogRepo struct {
	mock.Mock
}

func (m *MockBookingLogRepo) Save(ctx context.Context, log *entity.BookingLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockBookingLogRepo) FindByID(ctx context.Context, id string) (*entity.BookingLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BookingLog), args.Error(1)
}

func (m *MockBookingLogRepo) FindRecent(ctx context.Context, limit int) ([]*entity.BookingLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingLog), args.Error(1)
}

func (m *MockBookingLogRepo) FindBySourceRefs(ctx context.Context, source string, refs []string) (map[string]*entity.BookingLog, error) {
	args := m.Called(ctx, source, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*entity.BookingLog), args.Error(1)
}

func (m *MockBookingLogRepo) GetLatest(ctx context.Context, source string) (*entity.BookingLog, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BookingLog), args.Error(1)
}
