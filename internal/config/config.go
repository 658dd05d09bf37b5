// Package config loads ls-constellation settings from defaults, an optional
// YAML file, a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when the merged configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables read by Load.
const (
	EnvAPIKey   = "GOOGLE_AI_API_KEY"
	EnvLogLevel = "LS_CONSTELLATION_LOG_LEVEL"
	EnvObserver = "LS_CONSTELLATION_OBSERVER" // "lat,lon"
)

// Starfield tunes the background animation.
type Starfield struct {
	StarCount        int     `yaml:"star_count" validate:"gte=0,lte=5000"`
	ParallaxStrength float64 `yaml:"parallax_strength" validate:"gte=0"`
	DriftSpeed       float64 `yaml:"drift_speed" validate:"gte=0,lte=100"`
}

// Observer is the ground location used for altitude readouts.
type Observer struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `yaml:"lon" validate:"gte=-180,lte=180"`
}

// Assistant configures the chat assistant.
type Assistant struct {
	Model        string        `yaml:"model" validate:"required"`
	APIKey       string        `yaml:"api_key"`
	HistoryLimit int           `yaml:"history_limit" validate:"gte=0"`
	Timeout      time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Guestbook configures comment storage.
type Guestbook struct {
	DBPath string `yaml:"db_path" validate:"required"`
	Limit  int    `yaml:"limit" validate:"gte=1,lte=500"`
}

// Config is the full application configuration.
type Config struct {
	LogLevel      string    `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFile       string    `yaml:"log_file"`
	PortfolioPath string    `yaml:"portfolio_path"`
	Birthdate     string    `yaml:"birthdate"`
	Starfield     Starfield `yaml:"starfield"`
	Observer      Observer  `yaml:"observer"`
	Assistant     Assistant `yaml:"assistant"`
	Guestbook     Guestbook `yaml:"guestbook"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		LogFile:  filepath.Join(os.TempDir(), "ls-constellation.log"),
		Starfield: Starfield{
			StarCount:        300,
			ParallaxStrength: 0.005,
			DriftSpeed:       1,
		},
		Observer: Observer{
			Name: "Greenwich",
			Lat:  51.4779,
			Lon:  -0.0015,
		},
		Assistant: Assistant{
			Model:        "gemini-2.5-flash",
			HistoryLimit: 20,
			Timeout:      30 * time.Second,
		},
		Guestbook: Guestbook{
			DBPath: defaultDBPath(),
			Limit:  20,
		},
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "ls-constellation", "guestbook.db")
}

// Load builds the configuration. path may be empty; a missing .env file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Existing environment variables win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.Assistant.APIKey = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvObserver); ok && v != "" {
		lat, lon, err := parseLatLon(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvObserver, err)
		}
		c.Observer.Lat, c.Observer.Lon = lat, lon
		c.Observer.Name = ""
	}
	return nil
}

func parseLatLon(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want \"lat,lon\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("longitude: %w", err)
	}
	return lat, lon, nil
}

var validate = validator.New()

// Validate checks ranges and required fields.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, len(verrs))
	for i, e := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msgs[i] += "=" + e.Param()
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
