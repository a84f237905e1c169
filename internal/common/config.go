package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	PlacesAPI   PlacesConfig  `toml:"places_api"`
	Import      ImportConfig  `toml:"import"`
	Sitemap     SitemapConfig `toml:"sitemap"`
}

type ServerConfig struct {
	Port       int    `toml:"port" validate:"gt=0,lte=65535"`
	Host       string `toml:"host"`
	AdminToken string `toml:"admin_token"` // Shared secret for /api/admin routes; empty disables the check
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
	Photos PhotosConfig `toml:"photos"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"`
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// PhotosConfig configures the filesystem-backed photo object store
type PhotosConfig struct {
	Dir           string `toml:"dir" validate:"required"` // Directory holding downloaded venue photos
	PublicBaseURL string `toml:"public_base_url"`         // Base URL prefix for stored photo paths
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// PlacesConfig contains Google Places API configuration
type PlacesConfig struct {
	APIKey         string        `toml:"api_key"`
	Keyword        string        `toml:"keyword"`          // Category keyword prepended to searches ("sauna")
	Language       string        `toml:"language"`         // Provider language parameter
	Region         string        `toml:"region"`           // Provider region bias parameter
	RateLimit      time.Duration `toml:"rate_limit"`       // Minimum time between provider requests
	RequestTimeout time.Duration `toml:"request_timeout"`  // HTTP request timeout
	PageTokenDelay time.Duration `toml:"page_token_delay"` // Wait before a next_page_token becomes valid
	MaxPages       int           `toml:"max_pages" validate:"gte=1"`
	PhotoMaxWidth  int           `toml:"photo_max_width"` // maxwidth parameter for photo downloads
	BaseURL        string        `toml:"base_url"`        // Override for tests; empty uses the Google endpoint
}

// ImportConfig controls the place import worker
type ImportConfig struct {
	MaxPhotos         int  `toml:"max_photos" validate:"gte=0,lte=10"`
	EnrichFromWebsite bool `toml:"enrich_from_website"` // Fetch venue website for an SEO description
}

// SitemapConfig controls scheduled sitemap regeneration
type SitemapConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Standard five-field cron expression
	SiteURL  string `toml:"site_url"`
	Output   string `toml:"output"` // File path for the generated sitemap.xml
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings should be exposed in saunagids.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
			Photos: PhotosConfig{
				Dir:           "./data/photos",
				PublicBaseURL: "http://localhost:8080/photos",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		PlacesAPI: PlacesConfig{
			APIKey:         "",
			Keyword:        "sauna",
			Language:       "nl",
			Region:         "nl",
			RateLimit:      1 * time.Second,
			RequestTimeout: 30 * time.Second,
			// Google rejects a next_page_token reused before ~2s; 2.5s is safe
			PageTokenDelay: 2500 * time.Millisecond,
			MaxPages:       3,
			PhotoMaxWidth:  1200,
		},
		Import: ImportConfig{
			MaxPhotos:         10,
			EnrichFromWebsite: false,
		},
		Sitemap: SitemapConfig{
			Enabled:  true,
			Schedule: "0 * * * *", // Hourly
			SiteURL:  "https://saunaboeken.com",
			Output:   "./data/sitemap.xml",
		},
	}
}

// LoadFromFiles loads configuration from defaults, then each file in order,
// then environment overrides. Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyFlagOverrides applies command-line flag values (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration for structural errors
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Environment != "development" && c.Environment != "production" {
		return fmt.Errorf("invalid configuration: environment must be development or production, got %q", c.Environment)
	}
	return nil
}

func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SAUNAGIDS_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("SAUNAGIDS_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SAUNAGIDS_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if token := os.Getenv("SAUNAGIDS_ADMIN_TOKEN"); token != "" {
		config.Server.AdminToken = token
	}

	if badgerPath := os.Getenv("SAUNAGIDS_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if photosDir := os.Getenv("SAUNAGIDS_PHOTOS_DIR"); photosDir != "" {
		config.Storage.Photos.Dir = photosDir
	}
	if baseURL := os.Getenv("SAUNAGIDS_PHOTOS_BASE_URL"); baseURL != "" {
		config.Storage.Photos.PublicBaseURL = baseURL
	}

	if level := os.Getenv("SAUNAGIDS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("SAUNAGIDS_LOG_OUTPUT"); output != "" {
		parts := strings.Split(output, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		config.Logging.Output = parts
	}

	if apiKey := os.Getenv("GOOGLE_PLACES_API_KEY"); apiKey != "" {
		config.PlacesAPI.APIKey = apiKey
	}
	if rateLimit := os.Getenv("SAUNAGIDS_PLACES_RATE_LIMIT"); rateLimit != "" {
		if d, err := time.ParseDuration(rateLimit); err == nil {
			config.PlacesAPI.RateLimit = d
		}
	}
	if siteURL := os.Getenv("SAUNAGIDS_SITE_URL"); siteURL != "" {
		config.Sitemap.SiteURL = siteURL
	}
}
