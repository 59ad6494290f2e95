// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Parsing and resolution
	ParsePolicy     string
	DisplayLanguage string
	LookupTimeout   time.Duration
	LookupRateLimit float64

	// Airport codes: "airportcodes" or "amadeus"
	IATAProvider          string
	AirportCodesAPIKey    string
	AirportCodesAPISecret string
	AmadeusClientID       string
	AmadeusClientSecret   string
	AmadeusEnv            string

	// Google Places
	GooglePlacesAPIKey string

	// Redis
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL
	PostgresURI string

	// Gmail
	GmailEnabled      bool
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailPollInterval time.Duration
	GmailSubjects     []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		ParsePolicy:     getEnv("PARSE_POLICY", "strict"),
		DisplayLanguage: getEnv("DISPLAY_LANGUAGE", "es"),
		LookupTimeout:   time.Duration(getEnvAsInt("LOOKUP_TIMEOUT", 12)) * time.Second,
		LookupRateLimit: getEnvAsFloat("LOOKUP_RATE_LIMIT", 5),

		IATAProvider:          getEnv("IATA_PROVIDER", "airportcodes"),
		AirportCodesAPIKey:    getEnv("AIRPORT_CODES_API_KEY", ""),
		AirportCodesAPISecret: getEnv("AIRPORT_CODES_API_SECRET", ""),
		AmadeusClientID:       getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret:   getEnv("AMADEUS_CLIENT_SECRET", ""),
		AmadeusEnv:            getEnv("AMADEUS_ENV", "test"),

		GooglePlacesAPIKey: getEnv("GOOGLE_PLACES_API_KEY", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL", 86400)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "flight_intent"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		GmailEnabled:      getEnvAsBool("GMAIL_ENABLED", false),
		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailPollInterval: time.Duration(getEnvAsInt("GMAIL_POLL_INTERVAL", 60)) * time.Second,
		GmailSubjects:     getEnvAsList("GMAIL_SUBJECTS", []string{"vuelo", "billete", "pasaje", "reserva"}),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
