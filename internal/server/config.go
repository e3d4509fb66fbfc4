package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/rental-compare/internal/config"
	"github.com/iwvelando/rental-compare/pkg/constants"
	"github.com/iwvelando/rental-compare/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address        string                `yaml:"address"`
	MaxBodySize    string                `yaml:"maxBodySize"`
	SessionTTL     string                `yaml:"sessionTTL"`
	AllowedOrigins []string              `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig       `yaml:"rateLimit"`
	Currency       config.CurrencyConfig `yaml:"currency"`
	Limits         validation.Limits     `yaml:"limits"`
	Logging        config.LoggingConfig  `yaml:"logging"`

	bodySizeBytes int64
	sessionTTL    time.Duration
	rateWindow    time.Duration
}

// RateLimitConfig bounds how many API requests one client may send per window.
type RateLimitConfig struct {
	Requests int    `yaml:"requests"`
	Window   string `yaml:"window"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := cfg.normalize(); err != nil {
		panic(fmt.Sprintf("default server config is invalid: %v", err))
	}
	return cfg
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the configured request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SessionIdleTTL returns how long an idle session is kept.
func (c *Config) SessionIdleTTL() time.Duration {
	return c.sessionTTL
}

// RateWindow returns the rate limiter refill window.
func (c *Config) RateWindow() time.Duration {
	return c.rateWindow
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"http://localhost" + constants.DefaultServerAddress}
	}
	if c.Currency.Symbol == "" {
		c.Currency.Symbol = constants.DefaultCurrencySymbol
	}
	c.Limits = c.Limits.WithDefaults()

	bytes, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = bytes
	c.MaxBodySize = strconv.FormatInt(bytes, 10)

	if c.sessionTTL, err = parseDuration("sessionTTL", c.SessionTTL, constants.DefaultSessionTTL); err != nil {
		return err
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = constants.DefaultRateLimitRequests
	}
	if c.rateWindow, err = parseDuration("rateLimit.window", c.RateLimit.Window, constants.DefaultRateLimitWindow); err != nil {
		return err
	}
	return nil
}

func parseDuration(field, value, fallback string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = fallback
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", field, value)
	}
	return d, nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
