// Package app builds the object graph shared by the server and the console.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"flight-intent-service/internal/domain/repository"
	"flight-intent-service/internal/infrastructure/config"
	"flight-intent-service/internal/infrastructure/persistence"
	"flight-intent-service/internal/interface/iata"
	"flight-intent-service/internal/interface/places"
	repo "flight-intent-service/internal/interface/repository"
	"flight-intent-service/internal/usecase"
	"flight-intent-service/pkg/intent"
	"flight-intent-service/pkg/logger"
	"flight-intent-service/pkg/metrics"
)

const metricsNamespace = "flightintent"

// App holds the wired components. Logs is nil when MongoDB is not configured.
type App struct {
	Config    *config.Config
	Registry  *prometheus.Registry
	Metrics   *metrics.Metrics
	Parser    *intent.Parser
	Resolver  *usecase.BookingResolver
	Processor *usecase.RequestProcessor
	Logs      repository.BookingLogRepository

	// Checks are named readiness probes for the configured backends.
	Checks map[string]func(ctx context.Context) error

	mongoClient *mongo.Client
	redisClient *redis.Client
	gormDB      *gorm.DB
	logger      logger.Logger
}

// New connects to every configured backend and builds the pipeline. Backends
// with an empty address are skipped; one that is configured but unreachable
// is an error.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	policy, err := intent.ParsePolicy(cfg.ParsePolicy)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Registry: prometheus.NewRegistry(),
		Checks:   map[string]func(ctx context.Context) error{},
		logger:   log,
	}
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.NewMetrics(metricsNamespace, a.Registry)

	if cfg.RedisAddr != "" {
		log.Info("Connecting to Redis", "addr", cfg.RedisAddr)
		a.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := a.redisClient.Ping(ctx).Err(); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.Checks["redis"] = func(ctx context.Context) error {
			return a.redisClient.Ping(ctx).Err()
		}
	}

	var airports repository.AirportRepository
	lexicon := intent.NewLexicon()
	if cfg.PostgresURI != "" {
		log.Info("Connecting to PostgreSQL")
		a.gormDB, err = persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		airports = repo.NewGormAirportRepository(a.gormDB)

		airlines, err := repo.NewGormAirlineRepository(a.gormDB).ListAll(ctx)
		if err != nil {
			log.Warn("Could not load airline master data, using built-in list", "error", err)
		} else {
			names := make([]string, 0, len(airlines))
			for _, al := range airlines {
				names = append(names, al.Name)
			}
			lexicon = intent.NewLexicon(names...)
			log.Info("Loaded airline master data", "count", len(names))
		}
		a.Checks["postgres"] = func(ctx context.Context) error {
			sqlDB, err := a.gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		a.mongoClient = client
		a.Logs = repo.NewMongoBookingLogRepository(db)
		a.Checks["mongodb"] = func(ctx context.Context) error {
			return a.mongoClient.Ping(ctx, nil)
		}
	} else {
		log.Warn("MONGODB_DSN not set, processed requests are not recorded")
	}

	lookup := a.airportLookup(ctx, airports)

	placeResolver, err := a.placeResolver(ctx)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.Parser = intent.NewParser(lexicon, policy, log.With("component", "parser"))
	a.Resolver = usecase.NewBookingResolver(
		placeResolver,
		lookup,
		cfg.DisplayLanguage,
		cfg.LookupTimeout,
		a.Metrics,
		log.With("component", "resolver"),
	)
	a.Processor = usecase.NewRequestProcessor(a.Parser, a.Resolver, a.Logs, a.Metrics, log.With("component", "processor"))

	log.Info("Pipeline ready", "policy", policy, "iataProvider", cfg.IATAProvider)
	return a, nil
}

// airportLookup builds provider, then the local table in front of it, then
// the cache in front of both.
func (a *App) airportLookup(ctx context.Context, airports repository.AirportRepository) repository.AirportCodeLookup {
	cfg := a.Config

	var limiter *rate.Limiter
	if cfg.LookupRateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.LookupRateLimit), 1)
	}

	var lookup repository.AirportCodeLookup
	switch cfg.IATAProvider {
	case "amadeus":
		lookup = iata.NewAmadeusClient(ctx, iata.AmadeusURL(cfg.AmadeusEnv),
			cfg.AmadeusClientID, cfg.AmadeusClientSecret, limiter, a.logger.With("component", "amadeus"))
	default:
		if cfg.IATAProvider != "airportcodes" {
			a.logger.Warn("Unknown IATA provider, using airportcodes", "provider", cfg.IATAProvider)
		}
		lookup = iata.NewAirportCodesClient(iata.DefaultAirportCodesURL,
			cfg.AirportCodesAPIKey, cfg.AirportCodesAPISecret, limiter, a.logger.With("component", "airportcodes"))
	}

	if airports != nil {
		lookup = iata.NewLocalFirstLookup(airports, lookup, a.logger.With("component", "airports"))
	}
	if a.redisClient != nil {
		lookup = iata.NewCachedLookup(a.redisClient, lookup, cfg.CacheTTL, a.Metrics, a.logger.With("component", "iata-cache"))
	}
	return lookup
}

func (a *App) placeResolver(ctx context.Context) (*places.Resolver, error) {
	var store places.Store
	if a.redisClient != nil {
		store = a.redisClient
	}
	r, err := places.NewResolver(ctx, a.Config.GooglePlacesAPIKey, store, a.Config.CacheTTL,
		a.Metrics, a.logger.With("component", "places"))
	if err != nil {
		return nil, fmt.Errorf("failed to create place resolver: %w", err)
	}
	return r, nil
}

// Close releases backend connections. It is safe on a partly built App.
func (a *App) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.logger.Error("MongoDB disconnect error", "error", err)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Redis close error", "error", err)
		}
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
