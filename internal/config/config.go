package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"spotify-yt-downloader/internal/shared"
)

const (
	DefaultOutputDir   = "downloaded_audio"
	DefaultWorkers     = 8
	DefaultPageLimit   = 100
	DefaultAudioFormat = "mp3"
	DefaultQuality     = "192"
	// MaxAlbumPageLimit is the largest page size the catalog accepts for album tracks.
	MaxAlbumPageLimit = 50
)

// Configuration structure
type Config struct {
	ClientID        string `json:"SpotifyClientID" yaml:"spotify_client_id" env:"SPOTIFY_CLIENT_ID"`
	ClientSecret    string `json:"SpotifyClientSecret" yaml:"spotify_client_secret" env:"SPOTIFY_CLIENT_SECRET"`
	OutputDir       string `json:"OutputDir" yaml:"output_dir" env:"SYD_OUTPUT_DIR"`
	Workers         int    `json:"Workers" yaml:"workers" env:"SYD_WORKERS"`
	PageLimit       int    `json:"PageLimit" yaml:"page_limit" env:"SYD_PAGE_LIMIT"`
	AudioFormat     string `json:"AudioFormat" yaml:"audio_format" env:"SYD_AUDIO_FORMAT"`
	AudioQuality    string `json:"AudioQuality" yaml:"audio_quality" env:"SYD_AUDIO_QUALITY"`
	TagFiles        bool   `json:"TagFiles" yaml:"tag_files" env:"SYD_TAG_FILES"`
	ShowProgress    bool   `json:"ShowProgress" yaml:"show_progress" env:"SYD_SHOW_PROGRESS"`
	InstallYTDLP    bool   `json:"InstallYTDLP" yaml:"install_ytdlp" env:"SYD_INSTALL_YTDLP"`
	WarningBehavior string `json:"WarningBehavior" yaml:"warning_behavior" env:"SYD_WARNING_BEHAVIOR"` // "immediate", "summary", or "silent"
	MetricsFile     string `json:"MetricsFile" yaml:"metrics_file" env:"SYD_METRICS_FILE"`
	Debug           bool   `json:"-" yaml:"-" env:"SYD_DEBUG"`
}

// Default returns a configuration populated with the built-in defaults.
func Default() *Config {
	return &Config{
		OutputDir:       DefaultOutputDir,
		Workers:         DefaultWorkers,
		PageLimit:       DefaultPageLimit,
		AudioFormat:     DefaultAudioFormat,
		AudioQuality:    DefaultQuality,
		ShowProgress:    true,
		WarningBehavior: string(shared.WarningsSummary),
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
func LoadConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if isYAML(filePath) {
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to unmarshal YAML config: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// SaveConfig saves configuration to a JSON or YAML file, chosen by extension.
func SaveConfig(filePath string, config *Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(filePath) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	dir := filepath.Dir(filePath)
	if err := shared.CreateDirIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func isYAML(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// ApplyEnv overlays environment variables onto config. Variables that are not
// set leave the current values alone.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Load builds a configuration from defaults, an optional config file and the
// environment, in that order.
func Load(filePath string) (*Config, error) {
	cfg := Default()
	if filePath != "" {
		if err := LoadConfig(filePath, cfg); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.ClientID == "" {
		errs = append(errs, errors.New("client id is required (--client-id or SPOTIFY_CLIENT_ID)"))
	}
	if c.ClientSecret == "" {
		errs = append(errs, errors.New("client secret is required (--client-secret or SPOTIFY_CLIENT_SECRET)"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory must not be empty"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.PageLimit < 1 {
		errs = append(errs, fmt.Errorf("page limit must be at least 1, got %d", c.PageLimit))
	}
	if c.AudioFormat == "" {
		errs = append(errs, errors.New("audio format must not be empty"))
	}
	if _, err := shared.ParseWarningBehavior(c.WarningBehavior); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// AlbumPageLimit returns the page size to use for album pages.
func (c *Config) AlbumPageLimit() int {
	if c.PageLimit > MaxAlbumPageLimit {
		return MaxAlbumPageLimit
	}
	return c.PageLimit
}
