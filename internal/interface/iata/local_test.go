package iata_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/interface/iata"
	"flight-intent-service/mocks"
	"flight-intent-service/pkg/logger"
)

func TestLocalFirstLookup(t *testing.T) {
	t.Run("answers from table", func(t *testing.T) {
		repo := new(mocks.MockAirportRepo)
		remote := new(mocks.MockAirportCodeLookup)
		repo.On("FindByCity", mock.Anything, "Quito").Return([]entity.Airport{{IATA: "UIO", CountryCode: "EC"}}, nil)

		code, err := iata.NewLocalFirstLookup(repo, remote, logger.NewNopLogger()).LookupIATA(t.Context(), "Quito", []string{"EC"})

		require.NoError(t, err)
		assert.Equal(t, "UIO", code)
		remote.AssertNotCalled(t, "LookupIATA", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls through on empty table", func(t *testing.T) {
		repo := new(mocks.MockAirportRepo)
		remote := new(mocks.MockAirportCodeLookup)
		repo.On("FindByCity", mock.Anything, "Cusco").Return([]entity.Airport{}, nil)
		remote.On("LookupIATA", mock.Anything, "Cusco", []string{"PE"}).Return("CUZ", nil)

		code, err := iata.NewLocalFirstLookup(repo, remote, logger.NewNopLogger()).LookupIATA(t.Context(), "Cusco", []string{"PE"})

		require.NoError(t, err)
		assert.Equal(t, "CUZ", code)
	})

	t.Run("falls through on table error", func(t *testing.T) {
		repo := new(mocks.MockAirportRepo)
		remote := new(mocks.MockAirportCodeLookup)
		repo.On("FindByCity", mock.Anything, "Lima").Return(nil, errors.New("db down"))
		remote.On("LookupIATA", mock.Anything, "Lima", []string(nil)).Return("", iata.ErrUnavailable)

		_, err := iata.NewLocalFirstLookup(repo, remote, logger.NewNopLogger()).LookupIATA(t.Context(), "Lima", nil)

		assert.ErrorIs(t, err, iata.ErrUnavailable)
	})
}
