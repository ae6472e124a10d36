package main

import (
	"net/http"

	"github.com/evyataryagoni/geolocate/internal/config"
	"github.com/evyataryagoni/geolocate/internal/handler"
	"github.com/evyataryagoni/geolocate/internal/limiter"
	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/metrics"
	"github.com/evyataryagoni/geolocate/internal/provider"
	"github.com/evyataryagoni/geolocate/internal/router"
	"github.com/evyataryagoni/geolocate/internal/service"
)

func main() {
	appConfig := config.Load()

	appLogger := setupLogger(appConfig)
	geoProvider := setupProvider(appConfig, appLogger)
	defer geoProvider.Close()

	rateLimiter := setupRateLimiter(appConfig, appLogger)
	defer rateLimiter.Close()

	metricsCollector := metrics.New()

	locationService := service.NewLocationService(geoProvider, metricsCollector, appLogger)
	defer locationService.Close()

	locationHandler := handler.NewLocationHandler(locationService)
	appRouter := router.SetupRouter(locationHandler, rateLimiter, metricsCollector, appLogger)

	startServer(appConfig, appRouter, appLogger)
}

// setupLogger initializes the structured logger.
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().Msg("Starting geolocate server...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("provider_type", appConfig.ProviderType).
		Str("provider_path", appConfig.ProviderPath).
		Str("rate_limiter_type", appConfig.RateLimitType).
		Int("rate_limit", appConfig.RateLimit).
		Int("rate_limit_window", appConfig.RateLimitWindow).
		Msg("Configuration loaded")

	return appLogger
}

// setupProvider initializes the geolocation provider based on configuration.
// Supports MaxMind, CSV, MySQL and Redis backends.
func setupProvider(appConfig *config.Config, log *logger.Logger) provider.Provider {
	switch appConfig.ProviderType {
	case "maxmind":
		p, err := provider.NewMaxMindProvider(appConfig.ProviderPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize MaxMind provider")
		}
		log.Info().Str("path", appConfig.ProviderPath).Msg("MaxMind provider initialized")
		return p

	case "csv":
		p, err := provider.NewCSVProvider(appConfig.ProviderPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize CSV provider")
		}
		log.Info().Str("path", appConfig.ProviderPath).Msg("CSV provider initialized")
		return p

	case "mysql":
		p, err := provider.NewMySQLProvider(appConfig.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize MySQL provider")
		}
		log.Info().Msg("MySQL provider initialized")
		return p

	case "redis":
		p, err := provider.NewRedisProvider(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis provider")
		}
		log.Info().Str("addr", appConfig.RedisAddr).Msg("Redis provider initialized")

		loadRedisDataIfEmpty(p, appConfig.ProviderPath, log)
		return p

	default:
		log.Fatal().Str("type", appConfig.ProviderType).Msg("Unknown provider type")
		return nil
	}
}

// loadRedisDataIfEmpty seeds Redis from the CSV snapshot on first start.
func loadRedisDataIfEmpty(redisProvider *provider.RedisProvider, csvPath string, log *logger.Logger) {
	isEmpty, err := redisProvider.IsEmpty()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to check if Redis is empty")
		return
	}

	if isEmpty {
		log.Info().Str("path", csvPath).Msg("Redis is empty, loading snapshot from CSV")
		count, err := redisProvider.LoadFromCSV(csvPath)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load snapshot")
			return
		}
		log.Info().Int("records", count).Msg("Snapshot loaded into Redis")
	}
}

// setupRateLimiter initializes the rate limiter.
func setupRateLimiter(appConfig *config.Config, log *logger.Logger) limiter.Limiter {
	// Effective rate in requests per second, e.g. 10 per 5s window = 2 req/s.
	effectiveRate := float64(appConfig.RateLimit) / float64(appConfig.RateLimitWindow)

	rateLimiter, err := limiter.NewLimiter(limiter.LimiterConfig{
		Type:              appConfig.RateLimitType,
		RequestsPerSecond: effectiveRate,
		RedisAddr:         appConfig.RedisAddr,
		RedisPassword:     appConfig.RedisPassword,
		RedisDB:           appConfig.RedisDB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize rate limiter")
	}

	log.Info().
		Str("type", appConfig.RateLimitType).
		Float64("requests_per_second", effectiveRate).
		Msg("Rate limiter initialized")

	return rateLimiter
}

// startServer starts the HTTP server and blocks.
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	serverAddr := ":" + appConfig.Port

	log.Info().
		Str("port", appConfig.Port).
		Str("api_endpoint", "http://localhost:"+appConfig.Port+"/v1/locate?ip=<ip>").
		Str("health_check", "http://localhost:"+appConfig.Port+"/health").
		Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
		Msg("Server is running")

	log.Fatal().Err(http.ListenAndServe(serverAddr, appRouter)).Msg("Server failed")
}
