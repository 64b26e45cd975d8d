package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/SiriusScan/mcp-redis/internal/connection"
	"github.com/SiriusScan/mcp-redis/internal/logging"
)

// DefaultURL is used when neither --url nor --url-env supplies a URL.
const DefaultURL = "redis://127.0.0.1:6379"

// Environment variables read by LoadFromEnv.
const (
	EnvURL            = "MCP_REDIS_URL"
	EnvScanCount      = "MCP_REDIS_SCAN_COUNT"
	EnvLogLevel       = "MCP_REDIS_LOG_LEVEL"
	EnvLogFormat      = "MCP_REDIS_LOG_FORMAT"
	EnvMetricsAddr    = "MCP_REDIS_METRICS_ADDR"
	EnvHealthAddr     = "MCP_REDIS_HEALTH_ADDR"
	EnvConnectTimeout = "MCP_REDIS_CONNECT_TIMEOUT"
)

// Config holds all configuration for the server
type Config struct {
	// URLs are connection URLs given directly, in order.
	URLs []string
	// URLEnvVars name environment variables holding further URLs.
	URLEnvVars []string

	// AllowWrite enables write mode.
	AllowWrite bool
	// ScanCount caps keys and members returned per call.
	ScanCount int

	Log struct {
		Level  string
		Format string // json or console
	}

	// MetricsAddr enables the Prometheus listener when set.
	MetricsAddr string
	// HealthAddr enables the gRPC health listener when set.
	HealthAddr string

	ConnectTimeout time.Duration
}

// LoadFromEnv creates a Config from environment variables, first loading
// envFile into the environment when it is given.
func LoadFromEnv(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading env file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.URLs = splitList(os.Getenv(EnvURL))
	cfg.ScanCount = getEnvInt(EnvScanCount, 100)
	cfg.Log.Level = getEnv(EnvLogLevel, "info")
	cfg.Log.Format = getEnv(EnvLogFormat, logging.FormatConsole)
	cfg.MetricsAddr = getEnv(EnvMetricsAddr, "")
	cfg.HealthAddr = getEnv(EnvHealthAddr, "")
	cfg.ConnectTimeout = getEnvDuration(EnvConnectTimeout, 5*time.Second)

	return cfg, nil
}

// ResolveURLs returns the URLs to connect to: direct URLs first, then one per
// URL environment variable, falling back to DefaultURL when both are empty.
// A named variable that is unset is an error.
func (c *Config) ResolveURLs() ([]string, error) {
	urls := append([]string(nil), c.URLs...)
	for _, name := range c.URLEnvVars {
		value, ok := os.LookupEnv(name)
		if !ok {
			return nil, fmt.Errorf("Environment variable '%s' is not set", name)
		}
		urls = append(urls, value)
	}

	if len(urls) == 0 {
		urls = append(urls, DefaultURL)
	}
	return urls, nil
}

// Validate checks every field and reports all problems together.
func (c *Config) Validate() error {
	var err error
	if c.ScanCount < 1 || int64(c.ScanCount) > math.MaxUint32 {
		err = multierr.Append(err, fmt.Errorf("scan count must be between 1 and %d: %d", uint32(math.MaxUint32), c.ScanCount))
	}
	if logErr := logging.ValidateConfig(logging.Config{Level: c.Log.Level, Format: c.Log.Format}); logErr != nil {
		err = multierr.Append(err, logErr)
	}
	if c.ConnectTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("connect timeout must not be negative: %s", c.ConnectTimeout))
	}
	for _, u := range c.URLs {
		if strings.TrimSpace(u) == "" {
			err = multierr.Append(err, fmt.Errorf("empty Redis URL"))
		}
	}
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// String renders the configuration with passwords redacted.
func (c *Config) String() string {
	redacted := make([]string, len(c.URLs))
	for i, u := range c.URLs {
		redacted[i] = connection.Redact(u)
	}
	return fmt.Sprintf(
		"urls=%v url_env=%v allow_write=%t scan_count=%d log_level=%s log_format=%s metrics_addr=%q health_addr=%q connect_timeout=%s",
		redacted, c.URLEnvVars, c.AllowWrite, c.ScanCount, c.Log.Level, c.Log.Format,
		c.MetricsAddr, c.HealthAddr, c.ConnectTimeout,
	)
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
