package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flight-intent-service/internal/usecase"
	"flight-intent-service/pkg/logger"
)

func TestSubjectRouter_GetHandler(t *testing.T) {
	r := NewSubjectRouter(logger.NewNopLogger())

	booking := usecase.NewBookingMailHandler(nil, "booking", []string{"vuelo", "reserva"})
	fallback := usecase.NewBookingMailHandler(nil, "fallback", nil)

	assert.Nil(t, r.GetHandler("Reserva de vuelo"))

	r.Register(booking)
	r.Register(fallback)

	assert.Same(t, booking, r.GetHandler("Solicitud de VUELO"))
	assert.Same(t, fallback, r.GetHandler("Factura mensual"))
}
