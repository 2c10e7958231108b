package config

import (
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration settings for the extraction service.
// It includes the environment, monitoring server port, locality provider
// settings, worker pool size, polling interval, corridor width and the
// database configuration.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The port for the extractor monitoring server.
// - ProviderType: The type of locality provider to use (google, nominatim, none).
// - APIKey: The API key for accessing external services (required for Google).
// - Workers: The number of concurrent workers for processing courses.
// - Interval: The duration between polling intervals.
// - CorridorWidth: The corridor width in meters used when rendering course documents.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env           string         `yaml:"env"`                      // Env is the current environment: local, dev, prod.
	Port          int            `yaml:"extractor.port"`           // Port is the extractor monitoring server port.
	ProviderType  string         `yaml:"provider.type"`            // ProviderType specifies which locality provider to use
	APIKey        string         `yaml:"extractor.api_key"`        // The API key for accessing external services.
	Workers       int            `yaml:"extractor.workers"`        // The number of concurrent workers for processing courses.
	Interval      time.Duration  `yaml:"extractor.interval"`       // The duration between polling intervals.
	CorridorWidth float64        `yaml:"extractor.corridor_width"` // Corridor width in meters for rendered documents.
	Database      PostgresConfig `yaml:"postgres"`                 // Database holds the postgres database configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// MustLoad loads the configuration from the environment and returns a Config
// struct. It panics when a numeric or duration value cannot be parsed.
func MustLoad() *Config {
	vpr := viper.New()
	vpr.SetEnvPrefix("COURSER")
	vpr.AutomaticEnv()

	vpr.SetDefault("ENV", "production")
	vpr.SetDefault("HEALTH_PORT", "8080")
	vpr.SetDefault("PROVIDER_TYPE", "none")
	vpr.SetDefault("WORKERS", "10")
	vpr.SetDefault("INTERVAL", "10m")
	vpr.SetDefault("CORRIDOR_WIDTH", "300")

	_ = vpr.BindEnv("DB_HOST", "DB_HOST")
	_ = vpr.BindEnv("DB_PORT", "DB_PORT")
	_ = vpr.BindEnv("DB_USERNAME", "DB_USERNAME")
	_ = vpr.BindEnv("DB_PASSWORD", "DB_PASSWORD")
	_ = vpr.BindEnv("DB_NAME", "DB_NAME")

	interval, err := time.ParseDuration(vpr.GetString("INTERVAL"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	healthPort, err := strconv.Atoi(vpr.GetString("HEALTH_PORT"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(vpr.GetString("WORKERS"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}
	if workers < 1 {
		panic("workers from configuration must be a positive integer")
	}

	width, err := strconv.ParseFloat(vpr.GetString("CORRIDOR_WIDTH"), 64)
	if err != nil {
		panic("failed to parse corridor width from configuration")
	}

	return &Config{
		Env:           vpr.GetString("ENV"),
		Port:          healthPort,
		ProviderType:  vpr.GetString("PROVIDER_TYPE"),
		APIKey:        vpr.GetString("PROVIDER_KEY"),
		Workers:       workers,
		Interval:      interval,
		CorridorWidth: width,
		Database: PostgresConfig{
			Host:     vpr.GetString("DB_HOST"),
			Port:     vpr.GetString("DB_PORT"),
			User:     vpr.GetString("DB_USERNAME"),
			Password: vpr.GetString("DB_PASSWORD"),
			Name:     vpr.GetString("DB_NAME"),
		},
	}
}
