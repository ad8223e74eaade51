package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Backend  BackendConfig  `toml:"backend"`
	Spotify  SpotifyConfig  `toml:"spotify"`
	Database DatabaseConfig `toml:"database"`
	Callback CallbackConfig `toml:"callback"`
	Log      LogConfig      `toml:"log"`
}

// BackendConfig points at the VibeLab REST API.
type BackendConfig struct {
	BaseURL string `toml:"base_url"`
}

// SpotifyConfig contains Spotify application credentials.
//
// ClientSecret is only needed for the anonymous (client credentials) search
// token; the user authorization flow is a public PKCE client.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	Scopes       string `toml:"scopes"`
}

// ScopeList splits the configured space-separated scope string.
func (s SpotifyConfig) ScopeList() []string {
	return strings.Fields(s.Scopes)
}

// DatabaseConfig contains local storage settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CallbackConfig contains settings for the local OAuth callback listener.
type CallbackConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LogConfig contains log file settings for TUI mode.
type LogConfig struct {
	File string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// A .env file in the working directory is consulted first; VIBELAB_* variables
// override the corresponding file values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// SaveConfig writes the configuration back to a TOML file.
func SaveConfig(path string, config *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays VIBELAB_* environment variables. godotenv.Load does not
// override variables already present in the environment.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	overrides := map[string]*string{
		"VIBELAB_BACKEND_URL":           &c.Backend.BaseURL,
		"VIBELAB_SPOTIFY_CLIENT_ID":     &c.Spotify.ClientID,
		"VIBELAB_SPOTIFY_CLIENT_SECRET": &c.Spotify.ClientSecret,
		"VIBELAB_SPOTIFY_REDIRECT_URI":  &c.Spotify.RedirectURI,
		"VIBELAB_SPOTIFY_SCOPES":        &c.Spotify.Scopes,
		"VIBELAB_DB_PATH":               &c.Database.Path,
		"VIBELAB_LOG_FILE":              &c.Log.File,
	}

	for key, target := range overrides {
		if value, exists := os.LookupEnv(key); exists && value != "" {
			*target = value
		}
	}
}
