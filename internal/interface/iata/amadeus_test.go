package iata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-intent-service/pkg/logger"
)

func TestAmadeusClient_LookupIATA(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":1799}`))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "BOGOTA", r.URL.Query().Get("keyword"))
		assert.Equal(t, "CO", r.URL.Query().Get("countryCode"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"subType":"AIRPORT","name":"EL DORADO INTL","iataCode":"BOG","address":{"cityName":"BOGOTA","countryCode":"CO"}},
			{"subType":"CITY","name":"BOGOTA","iataCode":"BOG","address":{"cityName":"BOGOTA","countryCode":"CO"}}
		]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewAmadeusClient(t.Context(), srv.URL, "id", "secret", nil, logger.NewNopLogger())

	code, err := c.LookupIATA(t.Context(), "Bogotá", []string{"CO"})
	require.NoError(t, err)
	assert.Equal(t, "BOG", code)
}

func TestAmadeusClient_Unconfigured(t *testing.T) {
	c := NewAmadeusClient(t.Context(), AmadeusURL("test"), "", "", nil, logger.NewNopLogger())

	_, err := c.LookupIATA(t.Context(), "Madrid", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAmadeusURL(t *testing.T) {
	assert.Equal(t, AmadeusProductionURL, AmadeusURL("production"))
	assert.Equal(t, AmadeusTestURL, AmadeusURL("test"))
	assert.Equal(t, AmadeusTestURL, AmadeusURL(""))
}

func TestAmadeusClient_TruncatedBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":1799}`))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "500")
		_, _ = w.Write([]byte(`{"data":[`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewAmadeusClient(t.Context(), srv.URL, "id", "secret", nil, logger.NewNopLogger())

	_, err := c.LookupIATA(t.Context(), "Bogotá", nil)
	assert.ErrorContains(t, err, "failed to read amadeus response")
}
