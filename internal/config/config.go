package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Spotify SpotifyConfig `yaml:"spotify"`
	Store   StoreConfig   `yaml:"store"`
	Fetch   FetchConfig   `yaml:"fetch"`
}

// SpotifyConfig holds Spotify API credentials
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	RedirectURI  string `yaml:"redirect_uri"`
}

// StoreConfig holds the location and document keys of the history store
type StoreConfig struct {
	Path       string `yaml:"path"`
	HistoryKey string `yaml:"history_key"`
	ReportKey  string `yaml:"report_key"`
}

// FetchConfig bounds the external fetches
type FetchConfig struct {
	RecentLimit  int `yaml:"recent_limit"`
	TopListLimit int `yaml:"top_list_limit"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides lets secrets come from the environment instead of the file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REFRESH_TOKEN"); v != "" {
		c.Spotify.RefreshToken = v
	}
}

// applyDefaults fills in values that are safe to leave out of the file
func (c *Config) applyDefaults() {
	if c.Store.Path == "" {
		c.Store.Path = "data"
	}
	if c.Store.HistoryKey == "" {
		c.Store.HistoryKey = "history"
	}
	if c.Store.ReportKey == "" {
		c.Store.ReportKey = "report"
	}
	if c.Fetch.RecentLimit <= 0 {
		c.Fetch.RecentLimit = 50
	}
	if c.Fetch.TopListLimit <= 0 {
		c.Fetch.TopListLimit = 50
	}
}

// validate checks if configuration is valid
func (c *Config) validate() error {
	if c.Spotify.ClientID == "" {
		return fmt.Errorf("spotify.client_id is required")
	}
	if c.Spotify.ClientSecret == "" {
		return fmt.Errorf("spotify.client_secret is required")
	}
	if c.Spotify.RefreshToken == "" {
		return fmt.Errorf("spotify.refresh_token is required")
	}
	if c.Fetch.RecentLimit > 50 {
		return fmt.Errorf("fetch.recent_limit must be at most 50")
	}
	if c.Fetch.TopListLimit > 50 {
		return fmt.Errorf("fetch.top_list_limit must be at most 50")
	}
	return nil
}
