// Package config handles the application configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aree6/LiftShift-sub002/internal/analysis"
	"github.com/aree6/LiftShift-sub002/internal/workout"
)

// Config represents the application configuration
type Config struct {
	Hevy    HevyConfig    `json:"hevy"`
	Display DisplayConfig `json:"display"`
	Trend   TrendConfig   `json:"trend"`
	Cache   CacheConfig   `json:"cache"`
}

// HevyConfig holds the Hevy API credential. Optional; CSV import works
// without it.
type HevyConfig struct {
	APIKey string `json:"api_key"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	WeightUnit string `json:"weight_unit"`
}

// TrendConfig exposes the trend classifier's tuning knobs. Zero values
// fall back to the defaults.
type TrendConfig struct {
	HalfLifeDays        float64 `json:"half_life_days"`
	MinSessions         int     `json:"min_sessions"`
	PlateauWindow       int     `json:"plateau_window"`
	PlateauTolerancePct float64 `json:"plateau_tolerance_pct"`
	SlopePct            float64 `json:"slope_pct"`
	ActivityWindowDays  int     `json:"activity_window_days"`
}

// CacheConfig tunes the in-memory result cache.
type CacheConfig struct {
	TTLMinutes int `json:"ttl_minutes"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	trend := analysis.DefaultTrendConfig()
	return Config{
		Display: DisplayConfig{
			WeightUnit: string(workout.UnitKg),
		},
		Trend: TrendConfig{
			HalfLifeDays:        trend.HalfLifeDays,
			MinSessions:         trend.MinSessions,
			PlateauWindow:       trend.PlateauWindow,
			PlateauTolerancePct: trend.PlateauTolerancePct,
			SlopePct:            trend.SlopePct,
			ActivityWindowDays:  trend.ActivityWindowDays,
		},
		Cache: CacheConfig{
			TTLMinutes: 10,
		},
	}
}

// Load reads the configuration from ~/.liftshift/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Display.WeightUnit == "" {
		cfg.Display.WeightUnit = defaults.Display.WeightUnit
	}
	if cfg.Trend.HalfLifeDays == 0 {
		cfg.Trend.HalfLifeDays = defaults.Trend.HalfLifeDays
	}
	if cfg.Trend.MinSessions == 0 {
		cfg.Trend.MinSessions = defaults.Trend.MinSessions
	}
	if cfg.Trend.PlateauWindow == 0 {
		cfg.Trend.PlateauWindow = defaults.Trend.PlateauWindow
	}
	if cfg.Trend.PlateauTolerancePct == 0 {
		cfg.Trend.PlateauTolerancePct = defaults.Trend.PlateauTolerancePct
	}
	if cfg.Trend.SlopePct == 0 {
		cfg.Trend.SlopePct = defaults.Trend.SlopePct
	}
	if cfg.Trend.ActivityWindowDays == 0 {
		cfg.Trend.ActivityWindowDays = defaults.Trend.ActivityWindowDays
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = defaults.Cache.TTLMinutes
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.liftshift/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Hevy.APIKey = "YOUR_API_KEY"
	return Save(&example)
}

// Validate checks if the config has sane values
func (c *Config) Validate() error {
	if u := workout.Unit(c.Display.WeightUnit); u != "" && !u.Valid() {
		return fmt.Errorf("display.weight_unit must be %q or %q, got %q", workout.UnitKg, workout.UnitLbs, c.Display.WeightUnit)
	}
	if c.Trend.HalfLifeDays < 0 {
		return fmt.Errorf("trend.half_life_days must be positive, got %v", c.Trend.HalfLifeDays)
	}
	if c.Trend.MinSessions < 0 || c.Trend.MinSessions == 1 {
		return fmt.Errorf("trend.min_sessions must be at least 2, got %d", c.Trend.MinSessions)
	}
	if c.Trend.PlateauWindow < 0 || c.Trend.PlateauWindow == 1 {
		return fmt.Errorf("trend.plateau_window must be at least 2, got %d", c.Trend.PlateauWindow)
	}
	if c.Trend.PlateauTolerancePct < 0 || c.Trend.PlateauTolerancePct > 0.5 {
		return fmt.Errorf("trend.plateau_tolerance_pct must be in [0, 0.5], got %v", c.Trend.PlateauTolerancePct)
	}
	if c.Trend.SlopePct < 0 {
		return fmt.Errorf("trend.slope_pct must be positive, got %v", c.Trend.SlopePct)
	}
	if c.Cache.TTLMinutes < 0 {
		return fmt.Errorf("cache.ttl_minutes must be positive, got %d", c.Cache.TTLMinutes)
	}
	return nil
}

// RequireAPIKey reports whether a usable Hevy API key is configured.
func (c *Config) RequireAPIKey() error {
	if c.Hevy.APIKey == "" || c.Hevy.APIKey == "YOUR_API_KEY" {
		return errors.New("hevy.api_key is required - generate one in the Hevy app's developer settings")
	}
	return nil
}

// ToTrendConfig maps the file representation onto the classifier's
// config, keeping defaults for fields the file leaves unset.
func (c *Config) ToTrendConfig() analysis.TrendConfig {
	tc := analysis.DefaultTrendConfig()
	if c.Trend.HalfLifeDays > 0 {
		tc.HalfLifeDays = c.Trend.HalfLifeDays
	}
	if c.Trend.MinSessions > 0 {
		tc.MinSessions = c.Trend.MinSessions
	}
	if c.Trend.PlateauWindow > 0 {
		tc.PlateauWindow = c.Trend.PlateauWindow
	}
	if c.Trend.PlateauTolerancePct > 0 {
		tc.PlateauTolerancePct = c.Trend.PlateauTolerancePct
	}
	if c.Trend.SlopePct > 0 {
		tc.SlopePct = c.Trend.SlopePct
	}
	if c.Trend.ActivityWindowDays > 0 {
		tc.ActivityWindowDays = c.Trend.ActivityWindowDays
	}
	return tc
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".liftshift", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".liftshift"), nil
}
