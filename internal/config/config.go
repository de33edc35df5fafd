package config

import (
	"os"
	"strconv"
	"strings"

	"launchdash/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig
	Database  DatabaseConfig
	Server    ServerConfig
	Chart     ChartConfig
	Dashboard DashboardConfig
	Logging   LoggingConfig
	Profiling ProfilingConfig
}

// DataConfig holds the launch file settings
type DataConfig struct {
	File          string
	Sheet         string
	SiteColumn    string
	PayloadColumn string
	OutcomeColumn string
}

// DatabaseConfig selects a SQL table as the record source instead of a file
type DatabaseConfig struct {
	URL    string
	Driver string
	Table  string
}

// Enabled reports whether records come from the database
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ChartConfig sizes rendered figures
type ChartConfig struct {
	Width  int
	Height int
}

// DashboardConfig holds presentation settings, optionally overridden by the
// YAML file named in DASHBOARD_CONFIG
type DashboardConfig struct {
	Title       string   `yaml:"title"`
	SliderStep  float64  `yaml:"slider_step"`
	MarkStep    float64  `yaml:"mark_step"`
	SiteOptions []string `yaml:"site_options"`
	AboutFile   string   `yaml:"about_file"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:      *loadDataConfig(),
		Database:  *loadDatabaseConfig(),
		Server:    *loadServerConfig(),
		Chart:     *loadChartConfig(),
		Dashboard: DefaultDashboardConfig(),
		Logging:   LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
		Profiling: *loadProfilingConfig(),
	}

	if path := os.Getenv("DASHBOARD_CONFIG"); path != "" {
		if err := config.Dashboard.MergeFile(path); err != nil {
			return nil, errors.Wrap(err, "failed to load dashboard configuration")
		}
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// DefaultDashboardConfig returns the stock dashboard layout
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Title:      "SpaceX Launch Records Dashboard",
		SliderStep: 1000,
		MarkStep:   2000,
	}
}

// MergeFile overlays non-zero fields from a YAML file
func (d *DashboardConfig) MergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}

	var overlay DashboardConfig
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return errors.Wrapf(errors.WithCode(errors.CodeConfigInvalid, err), "invalid YAML in %s", path)
	}

	if overlay.Title != "" {
		d.Title = overlay.Title
	}
	if overlay.SliderStep != 0 {
		d.SliderStep = overlay.SliderStep
	}
	if overlay.MarkStep != 0 {
		d.MarkStep = overlay.MarkStep
	}
	if len(overlay.SiteOptions) > 0 {
		d.SiteOptions = overlay.SiteOptions
	}
	if overlay.AboutFile != "" {
		d.AboutFile = overlay.AboutFile
	}
	return nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:          getEnvOrDefault("DATA_FILE", "spacex_launch_dash.csv"),
		Sheet:         getEnvOrDefault("DATA_SHEET", "Sheet1"),
		SiteColumn:    getEnvOrDefault("COLUMN_SITE", "Launch Site"),
		PayloadColumn: getEnvOrDefault("COLUMN_PAYLOAD", "Payload Mass (kg)"),
		OutcomeColumn: getEnvOrDefault("COLUMN_OUTCOME", "class"),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:    os.Getenv("DATABASE_URL"),
		Driver: strings.ToLower(getEnvOrDefault("DB_DRIVER", "postgres")),
		Table:  getEnvOrDefault("DB_TABLE", "launches"),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8050"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadChartConfig() *ChartConfig {
	return &ChartConfig{
		Width:  getEnvIntOrDefault("CHART_WIDTH", 720),
		Height: getEnvIntOrDefault("CHART_HEIGHT", 420),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if !config.Database.Enabled() && config.Data.File == "" {
		return errors.ConfigInvalid("DATA_FILE or DATABASE_URL is required")
	}
	if config.Database.Enabled() {
		switch config.Database.Driver {
		case "postgres", "mysql", "sqlite":
		default:
			return errors.ConfigInvalid("DB_DRIVER must be postgres, mysql or sqlite")
		}
	}
	if config.Chart.Width <= 0 || config.Chart.Height <= 0 {
		return errors.ConfigInvalid("chart width and height must be positive")
	}
	if config.Dashboard.SliderStep <= 0 || config.Dashboard.MarkStep <= 0 {
		return errors.ConfigInvalid("slider_step and mark_step must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
