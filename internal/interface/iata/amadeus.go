package iata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/pkg/logger"
	"flight-intent-service/pkg/textnorm"
)

// Amadeus API hosts.
const (
	AmadeusTestURL       = "https://test.api.amadeus.com"
	AmadeusProductionURL = "https://api.amadeus.com"
)

// AmadeusURL returns the API host for env ("test" or "production").
func AmadeusURL(env string) string {
	if env == "production" {
		return AmadeusProductionURL
	}
	return AmadeusTestURL
}

// AmadeusClient looks codes up with the Amadeus airport and city search
type AmadeusClient struct {
	baseURL    string
	configured bool
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logger.Logger
}

// NewAmadeusClient creates a new client authenticating with the OAuth2
// client credentials grant. A nil limiter means no rate limit.
func NewAmadeusClient(ctx context.Context, baseURL, clientID, clientSecret string, limiter *rate.Limiter, logger logger.Logger) *AmadeusClient {
	baseURL = strings.TrimRight(baseURL, "/")
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	return &AmadeusClient{
		baseURL:    baseURL,
		configured: clientID != "" && clientSecret != "",
		httpClient: config.Client(ctx),
		limiter:    limiter,
		logger:     logger,
	}
}

type amadeusLocationsResponse struct {
	Data []struct {
		SubType  string `json:"subType"`
		Name     string `json:"name"`
		IATACode string `json:"iataCode"`
		Address  struct {
			CityName    string `json:"cityName"`
			CountryCode string `json:"countryCode"`
		} `json:"address"`
	} `json:"data"`
}

// LookupIATA implements repository.AirportCodeLookup. City entries are the
// umbrella code covering all airports of the city.
func (c *AmadeusClient) LookupIATA(ctx context.Context, city string, preferred []string) (string, error) {
	keyword := strings.ToUpper(textnorm.Fold(city))
	if keyword == "" {
		return "", nil
	}
	if !c.configured {
		return "", fmt.Errorf("%w: AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set", ErrUnavailable)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("subType", "AIRPORT,CITY")
	query.Set("keyword", keyword)
	query.Set("page[limit]", "10")
	if len(preferred) == 1 {
		query.Set("countryCode", preferred[0])
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/reference-data/locations?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query amadeus locations for %q: %w", city, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read amadeus response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(body))
	}

	var result amadeusLocationsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse amadeus response: %w", err)
	}

	candidates := make([]entity.Airport, 0, len(result.Data))
	for _, loc := range result.Data {
		candidates = append(candidates, entity.Airport{
			IATA:        loc.IATACode,
			Name:        loc.Name,
			CityName:    loc.Address.CityName,
			CountryCode: loc.Address.CountryCode,
			AllAirports: loc.SubType == "CITY",
		})
	}

	code := SelectAirport(candidates, preferred)
	c.logger.Debug("Amadeus lookup done",
		"city", city,
		"candidates", len(candidates),
		"code", code)
	return code, nil
}
