package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRoute(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOrigin string
		wantDest   string
	}{
		{"de a", "Billete de Quito a Madrid para el", "Quito", "Madrid"},
		{"desde a", "desde Guayaquil a Bogotá", "Guayaquil", "Bogotá"},
		{"multi word cities", "vuelo de San José a Nueva York", "San José", "Nueva York"},
		{"no origin preposition", "billetes a Roma", "", "Roma"},
		{"verb before destination", "Quiero ir a Roma", "", "Roma"},
		{"last candidate wins", "de compras a pie. Billete de Lima a Cusco", "Lima", "Cusco"},
		{"leading filler trimmed", "Billete de ida de Quito a Madrid", "Quito", "Madrid"},
		{"country qualifier removed", "vuelo de Roma, Italia a Madrid", "Roma", "Madrid"},
		{"parenthesized qualifier removed", "vuelo de Quito (Ecuador) a Lima", "Quito", "Lima"},
		{"article city kept", "Billete de Quito a La Paz", "Quito", "La Paz"},
		{"time phrase after destination", "de Quito a Madrid a las", "Quito", "Madrid"},
		{"time phrase after article city", "Billete de Quito a La Paz para el a las", "Quito", "La Paz"},
		{"time phrase without origin", "vuelo a Madrid a las", "", "Madrid"},
		{"none", "hola buenas tardes", "", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRoute(tt.input)
			assert.Equal(t, tt.wantOrigin, got.Origin)
			assert.Equal(t, tt.wantDest, got.Destination)
		})
	}
}

func TestCleanCityPhrase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"la Roma", "Roma"},
		{"Madrid para el", "Madrid"},
		{"el de la Lima en el", "Lima"},
		{"necesito comprar billetes", ""},
		{"nueva york ciudad grande", "Nueva York Ciudad"},
		{"San José 2026", "San José"},
		{"los angeles", "Los Angeles"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCityPhrase(tt.input))
		})
	}
}
