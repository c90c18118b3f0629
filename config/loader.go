package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is looked up in the working directory
	ProjectConfigFile = "civicsync.yaml"
	// UserConfigDir is relative to the home directory
	UserConfigDir = ".config/civicsync"
	// UserConfigFile lives in UserConfigDir
	UserConfigFile = "config.yaml"
)

// Loader applies the configuration layers in order: defaults, user file,
// project file, .env, environment.
type Loader struct {
	logger *logrus.Entry

	UserPath    string
	ProjectPath string
	EnvFile     string
	Lookup      func(string) (string, bool)
}

// NewLoader creates a loader with the standard file locations
func NewLoader(logger *logrus.Entry) *Loader {
	return &Loader{
		logger:      logger,
		UserPath:    UserConfigPath(),
		ProjectPath: ProjectConfigFile,
		EnvFile:     ".env",
		Lookup:      os.LookupEnv,
	}
}

// UserConfigPath is the per-user config file, or "" when there is no home
// directory.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// Load builds and validates the configuration
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	for _, path := range []string{l.UserPath, l.ProjectPath} {
		if path == "" {
			continue
		}
		layer, err := readLayer(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				l.logger.WithField("path", path).WithError(err).Warn("Failed to load config file")
			}
			continue
		}
		l.logger.WithField("path", path).Debug("Loaded config file")
		layer.applyTo(config)
	}

	if l.EnvFile != "" {
		if err := godotenv.Load(l.EnvFile); err != nil {
			l.logger.WithField("path", l.EnvFile).Debug("No .env file found")
		}
	}

	if err := config.ApplyEnv(l.Lookup); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// fileLayer is one YAML file. The coordinates are kept as pointers so an
// explicit 0 still overrides.
type fileLayer struct {
	config    *Config
	latitude  *float64
	longitude *float64
}

// readLayer parses a YAML file without defaults so that applying it only
// overrides the keys it sets.
func readLayer(path string) (*fileLayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	layer := &fileLayer{config: &Config{}}
	if err := yaml.Unmarshal(data, layer.config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var keys struct {
		Location struct {
			Latitude  *float64 `yaml:"latitude"`
			Longitude *float64 `yaml:"longitude"`
		} `yaml:"location"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	layer.latitude = keys.Location.Latitude
	layer.longitude = keys.Location.Longitude
	return layer, nil
}

func (l *fileLayer) applyTo(c *Config) {
	c.Merge(l.config)
	if l.latitude != nil {
		c.Location.Latitude = *l.latitude
	}
	if l.longitude != nil {
		c.Location.Longitude = *l.longitude
	}
}
