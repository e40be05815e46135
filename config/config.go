package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. MOVIE_TUI_TMDB_LANGUAGE.
const EnvPrefix = "MOVIE_TUI"

// ErrTokenMissing is returned when no TMDB token was found in any source.
var ErrTokenMissing = errors.New("tmdb.token is required (set TMDB_TOKEN or add it to the config file)")

// Load reads configuration from defaults, an optional config file, a .env
// file in the working directory and the environment.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".movie-tui"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("tmdb.token", EnvPrefix+"_TMDB_TOKEN", "TMDB_TOKEN", "VITE_TMDB_TOKEN"); err != nil {
		return nil, fmt.Errorf("error binding token environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb.token", "")
	v.SetDefault("tmdb.timeout", 10*time.Second)
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.include_adult", false)
	v.SetDefault("tmdb.cache_size", 64)
	v.SetDefault("tmdb.cache_ttl", 5*time.Minute)

	// UI defaults
	v.SetDefault("ui.toast_duration", 4*time.Second)
	v.SetDefault("ui.page_range", 5)
	v.SetDefault("ui.page_margin", 1)

	// Scores defaults
	v.SetDefault("scores.enabled", false)
	v.SetDefault("scores.base_url", "https://www.rottentomatoes.com")
	v.SetDefault("scores.timeout", 10*time.Second)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if err := validateURL("tmdb.base_url", cfg.TMDB.BaseURL); err != nil {
		return err
	}
	if err := validateURL("tmdb.image_base_url", cfg.TMDB.ImageBaseURL); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.TMDB.Token) == "" {
		return ErrTokenMissing
	}

	if cfg.TMDB.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive, got %s", cfg.TMDB.Timeout)
	}
	if cfg.TMDB.CacheSize < 0 {
		return fmt.Errorf("tmdb.cache_size must not be negative, got %d", cfg.TMDB.CacheSize)
	}
	if cfg.TMDB.CacheSize > 0 && cfg.TMDB.CacheTTL <= 0 {
		return fmt.Errorf("tmdb.cache_ttl must be positive when the cache is enabled")
	}

	if cfg.UI.ToastDuration <= 0 {
		return fmt.Errorf("ui.toast_duration must be positive, got %s", cfg.UI.ToastDuration)
	}
	if cfg.UI.PageRange < 1 {
		return fmt.Errorf("ui.page_range must be at least 1, got %d", cfg.UI.PageRange)
	}
	if cfg.UI.PageMargin < 0 {
		return fmt.Errorf("ui.page_margin must not be negative, got %d", cfg.UI.PageMargin)
	}

	if cfg.Scores.Enabled {
		if err := validateURL("scores.base_url", cfg.Scores.BaseURL); err != nil {
			return err
		}
		if cfg.Scores.Timeout <= 0 {
			return fmt.Errorf("scores.timeout must be positive, got %s", cfg.Scores.Timeout)
		}
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

func validateURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https", key)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s: missing host", key)
	}
	return nil
}
