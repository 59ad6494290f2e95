// Package places resolves free-text place names to a display name and a
// country code with the Google Places API (New) text search.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	placesapi "google.golang.org/api/places/v1"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/pkg/logger"
	"flight-intent-service/pkg/metrics"
	"flight-intent-service/pkg/textnorm"
)

// fieldMask limits the text search response to what the resolver reads.
const fieldMask = "places.displayName,places.addressComponents"

// Store is the subset of the redis client the cache needs.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Resolver implements repository.PlaceResolver
type Resolver struct {
	service *placesapi.Service
	store   Store
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewResolver creates a new place resolver. Without an API key every call
// falls back to its input. store may be nil to disable caching.
func NewResolver(
	ctx context.Context,
	apiKey string,
	store Store,
	ttl time.Duration,
	metrics *metrics.Metrics,
	logger logger.Logger,
	opts ...option.ClientOption,
) (*Resolver, error) {
	r := &Resolver{
		store:   store,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
	if apiKey == "" {
		logger.Warn("GOOGLE_PLACES_API_KEY not set, place names are used as typed")
		return r, nil
	}

	service, err := placesapi.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}
	r.service = service
	return r, nil
}

// ResolvePlace returns the display name and country of text in language.
// countryHint biases the search. On any failure or empty result it returns
// text and countryHint unchanged.
func (r *Resolver) ResolvePlace(ctx context.Context, text, countryHint, language string) entity.Place {
	fallback := entity.Place{Name: text, CountryCode: countryHint}
	if r.service == nil || strings.TrimSpace(text) == "" {
		return fallback
	}

	key := "place:" + language + ":" + countryHint + ":" + textnorm.Fold(text)
	if place, ok := r.cached(ctx, key); ok {
		return place
	}

	req := &placesapi.GoogleMapsPlacesV1SearchTextRequest{
		TextQuery:    text,
		LanguageCode: language,
		RegionCode:   countryHint,
	}
	resp, err := r.service.Places.SearchText(req).
		Fields(googleapi.Field(fieldMask)).
		Context(ctx).
		Do()
	if err != nil {
		r.logger.Warn("Place search failed", "text", text, "error", err)
		return fallback
	}
	if len(resp.Places) == 0 {
		r.logger.Info("Place search found nothing", "text", text)
		return fallback
	}

	place := placeFromResult(resp.Places[0])
	if place.Name == "" {
		place.Name = text
	}
	if place.CountryCode == "" {
		place.CountryCode = countryHint
	}

	r.remember(ctx, key, place)
	return place
}

// placeFromResult prefers the locality component over the display name so
// "Aeropuerto de Barajas" still resolves to "Madrid".
func placeFromResult(p *placesapi.GoogleMapsPlacesV1Place) entity.Place {
	var place entity.Place
	for _, c := range p.AddressComponents {
		for _, t := range c.Types {
			switch t {
			case "locality":
				if place.Name == "" {
					place.Name = c.LongText
				}
			case "country":
				place.CountryCode = strings.ToUpper(c.ShortText)
			}
		}
	}
	if place.Name == "" && p.DisplayName != nil {
		place.Name = p.DisplayName.Text
	}
	return place
}

func (r *Resolver) cached(ctx context.Context, key string) (entity.Place, bool) {
	if r.store == nil {
		return entity.Place{}, false
	}
	data, err := r.store.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("Redis GET failed", "key", key, "error", err)
		}
		return entity.Place{}, false
	}
	var place entity.Place
	if err := json.Unmarshal([]byte(data), &place); err != nil {
		return entity.Place{}, false
	}
	r.metrics.CacheHits.WithLabelValues("places").Inc()
	return place, true
}

func (r *Resolver) remember(ctx context.Context, key string, place entity.Place) {
	if r.store == nil {
		return
	}
	data, err := json.Marshal(place)
	if err != nil {
		return
	}
	if err := r.store.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		r.logger.Warn("Redis SET failed", "key", key, "error", err)
	}
}
