// Package config loads civicsync settings from defaults, YAML files, a .env
// file and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"civicsync-client/models"

	"gopkg.in/yaml.v3"
)

// Config is the complete client configuration
type Config struct {
	API      APIConfig       `yaml:"api"`
	Session  SessionConfig   `yaml:"session"`
	Location models.Location `yaml:"location"`
	Stub     StubConfig      `yaml:"stub"`
}

// APIConfig locates the backend
type APIConfig struct {
	// URL is the API root, including the version prefix
	URL string `yaml:"url"`
}

// SessionConfig says where the signed-in credential is kept
type SessionConfig struct {
	File string `yaml:"file"`
}

// StubConfig configures the local contract stub server
type StubConfig struct {
	Addr          string `yaml:"addr"`
	JWTSecret     string `yaml:"jwt_secret"`
	AllowOrigin   string `yaml:"allow_origin"`
	AdminUsername string `yaml:"admin_username"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

// DefaultConfig returns a Config with working local defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			URL: "http://localhost:8080/api/v1",
		},
		Session: SessionConfig{
			File: defaultSessionFile(),
		},
		Location: models.Location{
			Latitude:  18.5204,
			Longitude: 73.8567,
		},
		Stub: StubConfig{
			Addr:          ":8080",
			JWTSecret:     "civicsync-dev-secret",
			AllowOrigin:   "http://localhost:5173",
			AdminUsername: "admin",
			AdminEmail:    "admin@civicsync.local",
			AdminPassword: "admin123",
		},
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".civicsync", "session.yaml")
	}
	return filepath.Join(home, UserConfigDir, "session.yaml")
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.url must be an absolute URL, got %q", c.API.URL)
	}
	if c.Session.File == "" {
		return fmt.Errorf("session.file is required")
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("location.latitude must be between -90 and 90")
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("location.longitude must be between -180 and 180")
	}
	return nil
}

// SaveToFile writes the configuration as YAML
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge copies the non-zero values of other over c. Location is left alone:
// 0 is a real coordinate, so file layers set it explicitly.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.API.URL != "" {
		c.API.URL = other.API.URL
	}
	if other.Session.File != "" {
		c.Session.File = other.Session.File
	}

	if other.Stub.Addr != "" {
		c.Stub.Addr = other.Stub.Addr
	}
	if other.Stub.JWTSecret != "" {
		c.Stub.JWTSecret = other.Stub.JWTSecret
	}
	if other.Stub.AllowOrigin != "" {
		c.Stub.AllowOrigin = other.Stub.AllowOrigin
	}
	if other.Stub.AdminUsername != "" {
		c.Stub.AdminUsername = other.Stub.AdminUsername
	}
	if other.Stub.AdminEmail != "" {
		c.Stub.AdminEmail = other.Stub.AdminEmail
	}
	if other.Stub.AdminPassword != "" {
		c.Stub.AdminPassword = other.Stub.AdminPassword
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL      = "CIVICSYNC_API_URL"
	EnvSessionFile = "CIVICSYNC_SESSION_FILE"
	EnvLatitude    = "CIVICSYNC_LATITUDE"
	EnvLongitude   = "CIVICSYNC_LONGITUDE"
	EnvStubAddr    = "CIVICSYNC_STUB_ADDR"
	EnvJWTSecret   = "JWT_SECRET"
)

// ApplyEnv overrides settings from the environment. lookup is normally
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.API.URL = v
	}
	if v, ok := lookup(EnvSessionFile); ok && v != "" {
		c.Session.File = v
	}
	if v, ok := lookup(EnvLatitude); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLatitude, err)
		}
		c.Location.Latitude = f
	}
	if v, ok := lookup(EnvLongitude); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLongitude, err)
		}
		c.Location.Longitude = f
	}
	if v, ok := lookup(EnvStubAddr); ok && v != "" {
		c.Stub.Addr = v
	}
	if v, ok := lookup(EnvJWTSecret); ok && v != "" {
		c.Stub.JWTSecret = v
	}
	return nil
}
