package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// DefaultAPIURL is the launchpads query endpoint
const DefaultAPIURL = "https://api.spacexdata.com/v4/launchpads/query"

// EnvPrefix prefixes every environment override, e.g. LAUNCHPADS_API_URL
const EnvPrefix = "launchpads"

// Config represents the application configuration
type Config struct {
	Version int        `toml:"version" ignored:"true"`
	API     APIConfig  `toml:"api" envconfig:"API"`
	UI      UISettings `toml:"ui" envconfig:"UI"`
	Log     LogConfig  `toml:"log" envconfig:"LOG"`
}

// APIConfig configures the launchpads API client
type APIConfig struct {
	URL string `toml:"url" envconfig:"URL"`
	// 0 disables the request timeout
	TimeoutSeconds int `toml:"timeout_seconds" envconfig:"TIMEOUT_SECONDS"`
	// 0 disables client side rate limiting
	RateLimitPerSecond float64 `toml:"rate_limit_per_second" envconfig:"RATE_LIMIT_PER_SECOND"`
	RateLimitBurst     int     `toml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize        int   `toml:"page_size" envconfig:"PAGE_SIZE"`
	PageSizeOptions []int `toml:"page_size_options" envconfig:"PAGE_SIZE_OPTIONS"`
	DebounceMillis  int   `toml:"debounce_ms" envconfig:"DEBOUNCE_MS"`
}

// LogConfig configures the log file
type LogConfig struct {
	File  string `toml:"file" envconfig:"FILE"`
	Level string `toml:"level" envconfig:"LEVEL"`
}

// Timeout returns the request timeout, 0 meaning none
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Debounce returns the quiescence window of the result pipeline
func (u UISettings) Debounce() time.Duration {
	return time.Duration(u.DebounceMillis) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for the user's config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "launchpads", "config.toml"),
	}
}

// NewConfigServiceForPath creates a config service bound to an explicit file
func NewConfigServiceForPath(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides cfg with LAUNCHPADS_* environment variables, after
// loading an optional .env file from the working directory
func ApplyEnv(cfg *Config) error {
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to apply environment: %w", err)
	}
	return nil
}

// Validate checks the configuration and fills in derived values
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return errors.New("api.url must not be empty")
	}
	u, err := url.Parse(c.API.URL)
	if err != nil {
		return fmt.Errorf("api.url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.url must be http or https, got %q", u.Scheme)
	}
	if c.API.TimeoutSeconds < 0 {
		return errors.New("api.timeout_seconds must not be negative")
	}
	if c.API.RateLimitPerSecond < 0 {
		return errors.New("api.rate_limit_per_second must not be negative")
	}
	if c.API.RateLimitPerSecond > 0 && c.API.RateLimitBurst < 1 {
		c.API.RateLimitBurst = 1
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	if c.UI.DebounceMillis < 0 {
		return errors.New("ui.debounce_ms must not be negative")
	}

	options := make([]int, 0, len(c.UI.PageSizeOptions)+1)
	seen := make(map[int]bool)
	for _, o := range append(c.UI.PageSizeOptions, c.UI.PageSize) {
		if o <= 0 {
			return fmt.Errorf("ui.page_size_options must be positive, got %d", o)
		}
		if !seen[o] {
			seen[o] = true
			options = append(options, o)
		}
	}
	sort.Ints(options)
	c.UI.PageSizeOptions = options

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			URL: DefaultAPIURL,
		},
		UI: UISettings{
			PageSize:        5,
			PageSizeOptions: []int{5, 10, 25, 100},
			DebounceMillis:  500,
		},
		Log: LogConfig{
			File:  "launchpads.log",
			Level: "info",
		},
	}
}
