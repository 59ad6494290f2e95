package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAirportCodeLookup is a mock implementation of repository.AirportCodeLookup.
type MockAirportCodeLookup struct {
	mock.Mock
}

func (m *MockAirportCodeLookup) LookupIATA(ctx context.Context, city string, preferred []string) (string, error) {
	args := m.Called(ctx, city, preferred)
	return args.String(0), args.Error(1)
}
