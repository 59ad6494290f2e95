package iata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/pkg/logger"
)

// DefaultAirportCodesURL is the air-port-codes.com API host.
const DefaultAirportCodesURL = "https://www.air-port-codes.com"

// AirportCodesClient looks codes up with the air-port-codes.com multi search
type AirportCodesClient struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logger.Logger
}

// NewAirportCodesClient creates a new client. An empty baseURL means
// DefaultAirportCodesURL; a nil limiter means no rate limit.
func NewAirportCodesClient(baseURL, apiKey, apiSecret string, limiter *rate.Limiter, logger logger.Logger) *AirportCodesClient {
	if baseURL == "" {
		baseURL = DefaultAirportCodesURL
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &AirportCodesClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    limiter,
		logger:     logger,
	}
}

type airportCodesResponse struct {
	Status   bool   `json:"status"`
	Message  string `json:"message"`
	Airports []struct {
		IATA    string `json:"iata"`
		Name    string `json:"name"`
		City    string `json:"city"`
		Country struct {
			ISO  string `json:"iso"`
			Name string `json:"name"`
		} `json:"country"`
	} `json:"airports"`
}

// LookupIATA implements repository.AirportCodeLookup. Missing credentials
// return ErrUnavailable without calling out.
func (c *AirportCodesClient) LookupIATA(ctx context.Context, city string, preferred []string) (string, error) {
	if strings.TrimSpace(city) == "" {
		return "", nil
	}
	if c.apiKey == "" || c.apiSecret == "" {
		return "", fmt.Errorf("%w: AIRPORT_CODES_API_KEY and AIRPORT_CODES_API_SECRET must be set", ErrUnavailable)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	form := url.Values{}
	form.Set("term", city)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/multi", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("APC-Auth", c.apiKey)
	req.Header.Set("APC-Auth-Secret", c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query airport codes for %q: %w", city, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read airport codes response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("airport codes error (%d): %s", resp.StatusCode, string(body))
	}

	var result airportCodesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse airport codes response: %w", err)
	}

	candidates := make([]entity.Airport, 0, len(result.Airports))
	for _, a := range result.Airports {
		candidates = append(candidates, entity.Airport{
			IATA:        a.IATA,
			Name:        a.Name,
			CityName:    a.City,
			CountryCode: a.Country.ISO,
		})
	}

	code := SelectAirport(candidates, preferred)
	c.logger.Debug("Airport codes lookup done",
		"city", city,
		"candidates", len(candidates),
		"code", code)
	return code, nil
}
