package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rollnconnect/rollconnect/internal/tracker"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Data    DataConfig        `yaml:"data"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	CORS    CORSConfig        `yaml:"cors"`
	Geo     GeoConfig         `yaml:"geo"`
	Tracker TrackerConfig     `yaml:"tracker"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Geo.Validate(); err != nil {
		return err
	}
	return c.Tracker.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DataConfig holds the path to the data directory where collections
// are persisted as JSON documents.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// SQLiteConfig holds the search index database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// CORSConfig lists the browser origins allowed to call the API. Empty
// means same-origin only.
type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// GeoConfig holds the location provider configuration. When Endpoint
// is empty, the static default position is used.
type GeoConfig struct {
	Endpoint     string  `yaml:"endpoint"`
	HighAccuracy bool    `yaml:"high_accuracy"`
	DefaultLat   float64 `yaml:"default_lat"`
	DefaultLng   float64 `yaml:"default_lng"`
}

// Validate validates the geo configuration.
func (c *GeoConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultLat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&c.DefaultLng, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// TrackerConfig holds the live-tracking schedule configuration.
type TrackerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Validate validates the tracker configuration.
func (c *TrackerConfig) Validate() error {
	if c.Interval < 0 {
		return fmt.Errorf("tracker: interval must not be negative")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Data: DataConfig{
			Dir: "./data",
		},
		SQLite: SQLiteConfig{
			Path: "./rollconnect.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Geo: GeoConfig{
			// Amsterdam, the community's home turf.
			DefaultLat: 52.3676,
			DefaultLng: 4.9041,
		},
		Tracker: TrackerConfig{
			Interval: tracker.DefaultInterval,
		},
	}
}
