package model

import "time"

// Config holds the full application configuration
type Config struct {
	Geocode     GeocodeConfig     `yaml:"geocode" mapstructure:"geocode"`
	Taxonomy    TaxonomyConfig    `yaml:"taxonomy" mapstructure:"taxonomy"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// GeocodeConfig configures the geocode resolver and its providers
type GeocodeConfig struct {
	// LocationIQKey enables the primary keyed provider; when empty the
	// provider is skipped entirely
	LocationIQKey string `yaml:"locationiq_key" mapstructure:"locationiq_key"`

	// Rate limits per provider, requests per second
	LocationIQRPS float64 `yaml:"locationiq_rps" mapstructure:"locationiq_rps"`
	NominatimRPS  float64 `yaml:"nominatim_rps" mapstructure:"nominatim_rps"`

	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`

	// CountryCode restricts provider results (ISO 3166-1 alpha-2)
	CountryCode string `yaml:"country_code" mapstructure:"country_code"`

	// Geofence bounds; results outside are treated as provider failure
	MinLat float64 `yaml:"min_lat" mapstructure:"min_lat"`
	MaxLat float64 `yaml:"max_lat" mapstructure:"max_lat"`
	MinLon float64 `yaml:"min_lon" mapstructure:"min_lon"`
	MaxLon float64 `yaml:"max_lon" mapstructure:"max_lon"`
}

// TaxonomyConfig configures classification
type TaxonomyConfig struct {
	// File is an optional YAML taxonomy path; empty means built-in default
	File string `yaml:"file" mapstructure:"file"`
}

// StoreConfig configures the persistence collaborator
type StoreConfig struct {
	// DSN is a PostgreSQL connection string; empty disables persistence
	// (records are normalized and reported but not inserted)
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// ConcurrencyConfig configures the worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LLMConfig configures the optional description summarizer
type LLMConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Model     string `yaml:"model" mapstructure:"model"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls reporting
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults. The geofence defaults to
// the United Kingdom bounding box; every scraped site is UK-sourced.
func DefaultConfig() *Config {
	return &Config{
		Geocode: GeocodeConfig{
			LocationIQRPS: 2,
			NominatimRPS:  1,
			Timeout:       10 * time.Second,
			UserAgent:     "eventscrape/0.1 (+https://github.com/ukfit/eventscrape)",
			CountryCode:   "gb",
			MinLat:        49.8,
			MaxLat:        60.9,
			MinLon:        -8.65,
			MaxLon:        1.80,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 200,
		},
	}
}
