package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/provider/regiondata"
	"github.com/redis/go-redis/v9"
)

// redisEntry is the JSON document stored per IP.
type redisEntry struct {
	models.GeoRecord
	CountryCode2 string `json:"country_code2"`
}

// RedisProvider implements Provider on top of Redis. Suitable when several
// server instances should share one geolocation dataset.
//
// Key format: geo:ip:<ip_address>, value: JSON-encoded record plus the
// alpha-2 country code.
type RedisProvider struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisProvider connects to Redis and verifies the connection.
func NewRedisProvider(addr, password string, db int) (*RedisProvider, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisProvider{client: client, ctx: ctx}, nil
}

func (p *RedisProvider) fetch(ip string) (*redisEntry, error) {
	key := fmt.Sprintf("geo:ip:%s", ip)

	val, err := p.client.Get(p.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("Redis query failed: %w", err)
	}

	var entry redisEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("failed to decode geo record: %w", err)
	}

	// IP has a json:"-" tag, so restore it from the key.
	entry.IP = ip

	return &entry, nil
}

// LookupRecord implements the Provider interface.
func (p *RedisProvider) LookupRecord(ip string) (*models.GeoRecord, error) {
	entry, err := p.fetch(ip)
	if err != nil {
		return nil, err
	}
	record := entry.GeoRecord
	return &record, nil
}

// LookupCountryName implements the Provider interface.
func (p *RedisProvider) LookupCountryName(ip string) (string, error) {
	entry, err := p.fetch(ip)
	if err != nil {
		return "", err
	}
	name, ok := countryName(entry.CountryCode2)
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupCountryCode implements the Provider interface.
func (p *RedisProvider) LookupCountryCode(ip string, letters int) (string, error) {
	if letters != 2 && letters != 3 {
		return "", fmt.Errorf("country code length must be 2 or 3, got %d", letters)
	}
	entry, err := p.fetch(ip)
	if err != nil {
		return "", err
	}
	code, ok := countryCode(entry.CountryCode2, letters)
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// LookupContinentCode implements the Provider interface.
func (p *RedisProvider) LookupContinentCode(ip string) (string, error) {
	entry, err := p.fetch(ip)
	if err != nil {
		return "", err
	}
	code, ok := continentCode(entry.CountryCode2)
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// LookupRegionName implements the Provider interface.
func (p *RedisProvider) LookupRegionName(countryCode2, regionCode string) (string, error) {
	name, ok := regiondata.RegionName(countryCode2, regionCode)
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupTimezone implements the Provider interface.
func (p *RedisProvider) LookupTimezone(countryCode2, regionCode string) (string, error) {
	tz, ok := regiondata.Timezone(countryCode2, regionCode)
	if !ok {
		return "", ErrNotFound
	}
	return tz, nil
}

// Set adds or updates one IP in Redis. Helper for populating the dataset.
func (p *RedisProvider) Set(record *models.GeoRecord, countryCode2 string) error {
	entry := redisEntry{GeoRecord: *record, CountryCode2: countryCode2}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode geo record: %w", err)
	}

	key := fmt.Sprintf("geo:ip:%s", record.IP)
	if err := p.client.Set(p.ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}

	return nil
}

// LoadFromCSV bulk-loads a CSV snapshot into Redis. Useful for initial data
// population; see cmd/load-redis.
func (p *RedisProvider) LoadFromCSV(csvPath string) (int, error) {
	csvProvider, err := NewCSVProvider(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load CSV: %w", err)
	}
	defer csvProvider.Close()

	count := 0
	for ip, entry := range csvProvider.entries {
		if err := p.Set(entry.record, entry.countryCode2); err != nil {
			return count, fmt.Errorf("failed to store IP %s: %w", ip, err)
		}
		count++
	}

	return count, nil
}

// IsEmpty reports whether Redis holds any geo data yet.
func (p *RedisProvider) IsEmpty() (bool, error) {
	keys, err := p.client.Keys(p.ctx, "geo:ip:*").Result()
	if err != nil {
		return false, fmt.Errorf("failed to check Redis keys: %w", err)
	}
	return len(keys) == 0, nil
}

// Close closes the Redis connection.
func (p *RedisProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
