package usecase

import (
	"context"
	"regexp"
	"sync"
	"time"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/domain/repository"
	"flight-intent-service/pkg/intent"
	"flight-intent-service/pkg/logger"
	"flight-intent-service/pkg/metrics"
)

// DefaultLookupTimeout bounds each external resolution call.
const DefaultLookupTimeout = 12 * time.Second

// Collaborator labels used in logs and metrics.
const (
	collaboratorPlaces = "places"
	collaboratorIATA   = "iata"
)

var (
	countryCodeRe = regexp.MustCompile(`^[A-Z]{2}$`)
	iataCodeRe    = regexp.MustCompile(`^[A-Z]{3}$`)
)

// BookingResolver turns an extracted intent into the final booking request,
// resolving cities through the place and airport code collaborators.
type BookingResolver struct {
	places   repository.PlaceResolver
	airports repository.AirportCodeLookup
	language string
	timeout  time.Duration
	now      func() time.Time
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// ResolverOption customizes a BookingResolver.
type ResolverOption func(*BookingResolver)

// WithClock sets the clock used to resolve dates without a year.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *BookingResolver) {
		r.now = now
	}
}

// NewBookingResolver creates a new booking resolver. A non-positive timeout
// means DefaultLookupTimeout.
func NewBookingResolver(
	places repository.PlaceResolver,
	airports repository.AirportCodeLookup,
	language string,
	timeout time.Duration,
	metrics *metrics.Metrics,
	logger logger.Logger,
	opts ...ResolverOption,
) *BookingResolver {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	r := &BookingResolver{
		places:   places,
		airports: airports,
		language: language,
		timeout:  timeout,
		now:      time.Now,
		metrics:  metrics,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolvedCity is the outcome for one side of the route.
type resolvedCity struct {
	name *string
	iata *string
}

// Resolve builds the final record. Origin and destination are resolved
// concurrently; a failed or timed out call leaves its field absent and never
// fails the request.
func (r *BookingResolver) Resolve(ctx context.Context, in entity.BookingIntent) entity.BookingRequest {
	var origin, destination resolvedCity

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		origin = r.resolveCity(ctx, entity.FieldOrigin, in.Origin, in.OriginCountryHint)
	}()
	go func() {
		defer wg.Done()
		destination = r.resolveCity(ctx, entity.FieldDestination, in.Destination, in.DestinationCountryHint)
	}()
	wg.Wait()

	var date *string
	if in.DateExpression != nil {
		if d, ok := intent.NormalizeDate(*in.DateExpression, r.now()); ok {
			date = &d
		} else {
			r.logger.Warn("Could not normalize date", "date", *in.DateExpression)
		}
	}

	pax := 1
	if in.Quantity != nil && *in.Quantity > 0 {
		pax = *in.Quantity
	}

	return entity.BookingRequest{
		OriginCity:      origin.name,
		DestinationCity: destination.name,
		OriginIATA:      origin.iata,
		DestinationIATA: destination.iata,
		Date:            date,
		Passengers:      pax,
		Airline:         in.Airline,
	}
}

func (r *BookingResolver) resolveCity(ctx context.Context, side string, city, hint *string) resolvedCity {
	if city == nil {
		return resolvedCity{}
	}

	countryHint := ""
	if hint != nil && countryCodeRe.MatchString(*hint) {
		countryHint = *hint
	}

	log := r.logger.With("side", side, "city", *city)

	start := time.Now()
	place, err := callWithTimeout(ctx, r.timeout, func(ctx context.Context) (entity.Place, error) {
		return r.places.ResolvePlace(ctx, *city, countryHint, r.language), nil
	})
	r.observe(collaboratorPlaces, start, err)
	if err != nil {
		log.Warn("Place resolution unavailable", "error", err)
		place = entity.Place{Name: *city, CountryCode: countryHint}
	}

	name := place.Name
	if name == "" {
		name = *city
	}

	country := place.CountryCode
	if country != "" && !countryCodeRe.MatchString(country) {
		log.Warn("Discarding malformed country code", "country", country)
		r.metrics.ResolutionErrors.WithLabelValues(collaboratorPlaces).Inc()
		country = ""
	}

	var preferred []string
	for _, c := range []string{country, countryHint} {
		if c != "" && (len(preferred) == 0 || preferred[0] != c) {
			preferred = append(preferred, c)
		}
	}

	result := resolvedCity{name: &name}

	start = time.Now()
	code, err := callWithTimeout(ctx, r.timeout, func(ctx context.Context) (string, error) {
		return r.airports.LookupIATA(ctx, name, preferred)
	})
	r.observe(collaboratorIATA, start, err)
	switch {
	case err != nil:
		log.Warn("Airport code lookup unavailable", "error", err)
	case code == "":
		log.Info("No airport code found", "preferred", preferred)
	case !iataCodeRe.MatchString(code):
		log.Warn("Discarding malformed airport code", "code", code)
	default:
		result.iata = &code
	}

	return result
}

func (r *BookingResolver) observe(collaborator string, start time.Time, err error) {
	r.metrics.ResolutionTime.WithLabelValues(collaborator).Observe(time.Since(start).Seconds())
	if err != nil {
		r.metrics.ResolutionErrors.WithLabelValues(collaborator).Inc()
	}
}

// callWithTimeout runs fn with a deadline and gives up waiting once it
// passes, even if fn ignores its context.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{value: v, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
