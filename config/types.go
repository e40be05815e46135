package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	UI      UIConfig      `mapstructure:"ui"`
	Scores  ScoresConfig  `mapstructure:"scores"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Token        string        `mapstructure:"token"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Language     string        `mapstructure:"language"`
	IncludeAdult bool          `mapstructure:"include_adult"`
	CacheSize    int           `mapstructure:"cache_size"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration"`
	PageRange     int           `mapstructure:"page_range"`
	PageMargin    int           `mapstructure:"page_margin"`
}

// ScoresConfig controls the optional Rotten Tomatoes scores lookup
type ScoresConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}
