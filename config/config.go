// Package config provides configuration management for HappyBadge.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dixieflatline76/HappyBadge/pkg/badge"
	"github.com/dixieflatline76/HappyBadge/util/log"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration data
type Config struct {
	Tuning            badge.Tuning `json:"tuning" yaml:"tuning"`
	ThumbnailOnUpload bool         `json:"thumbnail_on_upload" yaml:"thumbnail_on_upload"` // Shrink uploads to fit the badge, like the original upload page
	ReportPath        string       `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Tuning:            badge.DefaultTuning(),
		ThumbnailOnUpload: true,
	}
}

// GetPath returns the path to the user's config directory
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigSubDir), nil
}

// GetFilename returns the path to the user's config file
func GetFilename() (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the config file at path (the default location when empty), applies
// HAPPYBADGE_* environment overrides and validates the result. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetFilename()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if err := cfg.loadFromFile(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		log.Debugf("config: %s not found, using defaults", path)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads .env style files into the process environment. Missing files
// are skipped and variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
		log.Debugf("config: loaded environment from %s", f)
	}
	return nil
}

// loadFromFile decodes the file over the current values; .json files use
// encoding/json, everything else YAML.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return json.Unmarshal(data, c)
	}
	return yaml.Unmarshal(data, c)
}

// ApplyEnv overrides fields from environment variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "FIT_MODE"); ok {
		c.Tuning.FitMode = badge.FitMode(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := lookup(EnvPrefix + "RESAMPLER"); ok {
		c.Tuning.Resampler = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPrefix + "FACE_CASCADE"); ok {
		c.Tuning.FaceCascadePath = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPrefix + "HUE_SCALE"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sHUE_SCALE: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		c.Tuning.HueScale = n
	}
	if v, ok := lookup(EnvPrefix + "THUMBNAIL"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sTHUMBNAIL: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		c.ThumbnailOnUpload = b
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Tuning.FitMode == badge.FitFace && c.Tuning.FaceCascadePath == "" {
		log.Printf("config: face fit mode without face_cascade_path, smart fit will be used")
	}
	return nil
}

// Save writes the configuration to path (the default location when empty).
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := GetFilename()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil { // Ensure the directory exists
		return fmt.Errorf("creating config directory: %w", err)
	}

	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("encoding config data: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
