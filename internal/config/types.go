package config

import (
	"time"

	"github.com/rileyhilliard/statusboard/internal/tz"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .statusboard.yaml configuration file.
type Config struct {
	Version int          `yaml:"version" mapstructure:"version"`
	API     APIConfig    `yaml:"api" mapstructure:"api"`
	Poll    PollConfig   `yaml:"poll" mapstructure:"poll"`
	Board   BoardConfig  `yaml:"board" mapstructure:"board"`
	Server  ServerConfig `yaml:"server" mapstructure:"server"`
}

// APIConfig holds the monitoring API connection settings.
type APIConfig struct {
	// URL is the API base, e.g. https://icinga.example.com:5665.
	URL string `yaml:"url" mapstructure:"url"`

	// Username and Password are sent as HTTP Basic auth.
	// Both support ${VAR} expansion from the environment.
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`

	// InsecureSkipVerify disables TLS certificate checks, for the
	// self-signed certificates Icinga ships with.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`

	// Timeout bounds each request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// PollConfig controls the poll cycle.
type PollConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// BoardConfig controls the board layout.
type BoardConfig struct {
	// Slots is the number of items shown at once.
	Slots int `yaml:"slots" mapstructure:"slots"`

	// Timezone names a built-in zone used for "since" timestamps.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// ServerConfig controls the optional HTTP surface.
type ServerConfig struct {
	// Listen is the address to serve on, e.g. ":8080". Empty disables it.
	Listen string `yaml:"listen" mapstructure:"listen"`
}

// Defaults.
const (
	DefaultAPITimeout   = 10 * time.Second
	DefaultPollInterval = 30 * time.Second
	DefaultSlots        = 10
	MinPollInterval     = time.Second
	MaxSlots            = 50
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		API: APIConfig{
			Timeout: DefaultAPITimeout,
		},
		Poll: PollConfig{
			Interval: DefaultPollInterval,
		},
		Board: BoardConfig{
			Slots:    DefaultSlots,
			Timezone: tz.DefaultZone,
		},
	}
}
