// Package freesound is a client for the Freesound APIv2
// (https://freesound.org/docs/api/). Requests are described by the types of
// package query and its subpackages and executed with Execute, Download and
// the paging helpers of this package.
package freesound

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default API location.
const (
	DefaultBaseURL   = "https://freesound.org/apiv2"
	DefaultUserAgent = "freesound-go"
)

// Default client settings.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second

	// DefaultRequestsPerMinute matches the API's standard throttling limit.
	DefaultRequestsPerMinute = 60
)

// Config holds all configuration for the Freesound API client.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// ClientID identifies the API application in OAuth2 flows.
	ClientID string `yaml:"client_id"`

	// ClientSecret is the application's API key. It authenticates requests
	// that do not carry an OAuth2 token and the OAuth2 token exchange.
	ClientSecret string `yaml:"client_secret" validate:"required"`

	// RedirectURL is the OAuth2 callback registered for the application.
	RedirectURL string `yaml:"redirect_url" validate:"omitempty,url"`

	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent"`

	// Timeout is the HTTP client timeout for each request.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	// MaxRetries is the maximum number of retry attempts for failed requests.
	MaxRetries int `yaml:"max_retries" validate:"gte=0,lte=10"`

	// RetryDelay is the initial delay between retries (exponential backoff applied).
	RetryDelay time.Duration `yaml:"retry_delay" validate:"gte=0"`

	// RequestsPerMinute throttles the client. Zero disables throttling.
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"gte=0"`
}

// DefaultConfig returns a Config for the production API without credentials.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         DefaultUserAgent,
		Timeout:           DefaultTimeout,
		MaxRetries:        DefaultMaxRetries,
		RetryDelay:        DefaultRetryDelay,
		RequestsPerMinute: DefaultRequestsPerMinute,
	}
}

// WithAPIKey returns a copy of the config with the specified API key.
func (c Config) WithAPIKey(key string) Config {
	c.ClientSecret = key
	return c
}

// WithOAuth2 returns a copy of the config with the specified OAuth2
// application credentials.
func (c Config) WithOAuth2(clientID, clientSecret, redirectURL string) Config {
	c.ClientID = clientID
	c.ClientSecret = clientSecret
	c.RedirectURL = redirectURL
	return c
}

// WithBaseURL returns a copy of the config pointing at another API root.
func (c Config) WithBaseURL(baseURL string) Config {
	c.BaseURL = baseURL
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}

// WithRetries returns a copy of the config with the specified retry settings.
func (c Config) WithRetries(maxRetries int, retryDelay time.Duration) Config {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
	return c
}

// WithRateLimit returns a copy of the config with the specified throttling.
func (c Config) WithRateLimit(requestsPerMinute int) Config {
	c.RequestsPerMinute = requestsPerMinute
	return c
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config for missing or out of range settings.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads a YAML config file over DefaultConfig. When the file sets
// no client_secret the API key is taken from LoadAPIKey. The result is
// validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.ClientSecret == "" {
		if key, err := LoadAPIKey(); err == nil {
			cfg.ClientSecret = key
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
