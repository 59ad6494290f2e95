package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/pkg/logger"
	"flight-intent-service/pkg/metrics"
)

type memoryStore map[string]string

func (s memoryStore) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := s[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s memoryStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	s[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

const romeResponse = `{"places":[{
	"displayName":{"text":"Roma","languageCode":"es"},
	"addressComponents":[
		{"longText":"Roma","shortText":"Roma","types":["locality","political"]},
		{"longText":"Italia","shortText":"IT","types":["country","political"]}
	]}]}`

func newTestResolver(t *testing.T, handler http.HandlerFunc, store Store) (*Resolver, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	r, err := NewResolver(t.Context(), "key", store, time.Hour, m, logger.NewNopLogger(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return r, m
}

func TestResolver_ResolvePlace(t *testing.T) {
	var calls atomic.Int32
	store := memoryStore{}
	r, m := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		assert.True(t, strings.HasSuffix(req.URL.Path, "places:searchText"), req.URL.Path)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "roma", strings.ToLower(body["textQuery"].(string)))
		assert.Equal(t, "es", body["languageCode"])
		assert.Equal(t, "IT", body["regionCode"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(romeResponse))
	}, store)

	got := r.ResolvePlace(t.Context(), "Roma", "IT", "es")
	assert.Equal(t, entity.Place{Name: "Roma", CountryCode: "IT"}, got)

	got = r.ResolvePlace(t.Context(), "roma", "IT", "es")
	assert.Equal(t, entity.Place{Name: "Roma", CountryCode: "IT"}, got)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("places")))
}

func TestResolver_Fallbacks(t *testing.T) {
	t.Run("no api key", func(t *testing.T) {
		m := metrics.NewMetrics("test", prometheus.NewRegistry())
		r, err := NewResolver(t.Context(), "", nil, 0, m, logger.NewNopLogger())
		require.NoError(t, err)

		assert.Equal(t, entity.Place{Name: "Quito", CountryCode: "EC"}, r.ResolvePlace(t.Context(), "Quito", "EC", "es"))
	})

	t.Run("api error", func(t *testing.T) {
		r, _ := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"code":400,"message":"bad request"}}`, http.StatusBadRequest)
		}, nil)

		assert.Equal(t, entity.Place{Name: "Quito", CountryCode: ""}, r.ResolvePlace(t.Context(), "Quito", "", "es"))
	})

	t.Run("no results", func(t *testing.T) {
		r, _ := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		}, nil)

		assert.Equal(t, entity.Place{Name: "Narnia", CountryCode: "GB"}, r.ResolvePlace(t.Context(), "Narnia", "GB", "es"))
	})
}

func TestPlaceFromResult_DisplayNameWithoutLocality(t *testing.T) {
	r, _ := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"places":[{"displayName":{"text":"Cusco"},"addressComponents":[{"longText":"Perú","shortText":"pe","types":["country"]}]}]}`))
	}, nil)

	assert.Equal(t, entity.Place{Name: "Cusco", CountryCode: "PE"}, r.ResolvePlace(t.Context(), "cuzco", "", "es"))
}
