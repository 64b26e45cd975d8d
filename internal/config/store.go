package config

import (
	"os"
	"strconv"
	"time"

	"github.com/SiriusScan/mcp-redis/internal/store"
)

// clientName is announced to every instance with CLIENT SETNAME.
const clientName = "mcp-redis"

// StoreConfig returns the store settings shared by every connection. The URL
// is filled in per connection.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		ConnectTimeout: c.ConnectTimeout,
		ClientName:     clientName,
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("3s") or plain seconds ("3").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
