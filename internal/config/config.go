package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Engine holds all configuration for the ability runtime daemon.
type Engine struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Simulation
	FrameRate        int           `yaml:"frame_rate"`          // timeline rate when a definition leaves it at 0
	TickInterval     time.Duration `yaml:"tick_interval"`       // simulation step (default: 33ms)
	MaxCatchUpFrames int           `yaml:"max_catch_up_frames"` // per-tick frame limit, 0 = unbounded

	// Definitions
	AbilitiesPath string `yaml:"abilities_path"`

	Database  DatabaseConfig  `yaml:"database"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
// Grant persistence is skipped when Enabled is false.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// TelemetryConfig controls OTLP trace export of timeline phases.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"` // host:port of the OTLP/HTTP collector
	ServiceName string `yaml:"service_name"`
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		LogLevel:      "info",
		FrameRate:     30,
		TickInterval:  33 * time.Millisecond,
		AbilitiesPath: "config/abilities.yaml",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "gas",
			Password: "gas",
			DBName:   "gas",
			SSLMode:  "disable",
		},
		Telemetry: TelemetryConfig{
			Endpoint:    "localhost:4318",
			ServiceName: "gasd",
		},
	}
}

// LoadEngine loads engine config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Engine) validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.MaxCatchUpFrames < 0 {
		return fmt.Errorf("max_catch_up_frames must not be negative, got %d", c.MaxCatchUpFrames)
	}
	return nil
}
