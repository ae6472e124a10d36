package main

import (
	"log"

	"github.com/evyataryagoni/geolocate/internal/config"
	"github.com/evyataryagoni/geolocate/internal/provider"
)

// Loads a CSV geolocation snapshot into Redis so the server can run with
// PROVIDER_TYPE=redis. Usage: go run cmd/load-redis/main.go
func main() {
	appConfig := config.Load()

	log.Printf("Connecting to Redis at %s...", appConfig.RedisAddr)
	redisProvider, err := provider.NewRedisProvider(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisProvider.Close()

	log.Printf("Loading data from %s...", appConfig.ProviderPath)
	count, err := redisProvider.LoadFromCSV(appConfig.ProviderPath)
	if err != nil {
		log.Fatalf("Failed to load CSV data: %v", err)
	}

	log.Printf("Loaded %d records. Start the server with PROVIDER_TYPE=redis.", count)
}
