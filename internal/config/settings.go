package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Config mirrors the parts of the Predator config.json this program reads.
// Unknown sections are ignored.
type Config struct {
	Developer struct {
		Offline    bool `json:"offline"`
		IgnoreList struct {
			Enabled       bool     `json:"enabled"`
			LocalFile     string   `json:"local_file"`
			RemoteSources []string `json:"remote_sources"`
		} `json:"ignore_list"`
	} `json:"developer"`
}

const configFileName = "config.json"

// ErrConfigNotFound is returned when config.json is absent from the installation root.
var ErrConfigNotFound = errors.New("config: configuration file does not exist")

//go:embed default_config.json
var defaultConfig []byte

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := json.Unmarshal(defaultConfig, &cfg); err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// ConfigPath returns the location of config.json inside root.
func ConfigPath(root string) string {
	return filepath.Join(root, configFileName)
}

// LoadFromRoot reads config.json from the installation root.
func LoadFromRoot(root string) (Config, error) {
	return Load(ConfigPath(root))
}

// Load reads the file at path and decodes it over the embedded defaults, so
// keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("read configuration %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("configuration %s could not be loaded, it may be corrupted: %w", path, err)
	}

	log.Debug("Configuration loaded", "path", path,
		"ignore_list_enabled", cfg.Developer.IgnoreList.Enabled,
		"remote_sources", len(cfg.Developer.IgnoreList.RemoteSources),
		"offline", cfg.Developer.Offline,
	)
	return cfg, nil
}
