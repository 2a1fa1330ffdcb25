package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/growthtrack/config.yaml"

// Config holds all GrowthTrack configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Chart   ChartConfig   `yaml:"chart"`
	Report  ReportConfig  `yaml:"report"`
	Export  ExportConfig  `yaml:"export"`
}

type StorageConfig struct {
	Path       string `yaml:"path"`
	SQLiteFile string `yaml:"sqlite_file"`
}

type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ReportConfig points at the embeddable report typeface. FontDir is
// relative to the storage path unless absolute.
type ReportConfig struct {
	FontURL string `yaml:"font_url"`
	FontDir string `yaml:"font_dir"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// DBPath resolves the SQLite database location.
func (c *Config) DBPath() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// FontCacheDir resolves the directory for the cached report font.
func (c *Config) FontCacheDir() (string, error) {
	if filepath.IsAbs(c.Report.FontDir) {
		return c.Report.FontDir, nil
	}
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Report.FontDir), nil
}

// ExportDir resolves where export and report files are written.
func (c *Config) ExportDir() (string, error) {
	return expandPath(c.Export.Dir)
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
