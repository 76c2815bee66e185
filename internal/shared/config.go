package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog     CatalogConfig     `toml:"catalog"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Recommend   RecommendConfig   `toml:"recommend"`
	Server      ServerConfig      `toml:"server"`
}

// CatalogConfig locates the catalog source files.
//
// Source selects where the catalog is loaded from: "csv" reads the four
// locale-partitioned CSV files under Dir, "sqlite" reads the tables imported
// by `spindle setup` from the database at [DatabaseConfig.Path].
type CatalogConfig struct {
	Source    string `toml:"source"`
	Dir       string `toml:"dir"`
	SongsEN   string `toml:"songs_en"`
	SongsFA   string `toml:"songs_fa"`
	ArtistsEN string `toml:"artists_en"`
	ArtistsFA string `toml:"artists_fa"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	Genius  GeniusConfig  `toml:"genius"`
	LastFM  LastFMConfig  `toml:"lastfm"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	AccessToken  string `toml:"access_token"`
}

// Map flattens the credentials for the services constructors.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
		"redirect_uri":  s.RedirectURI,
	}
}

// GeniusConfig contains Genius API credentials.
type GeniusConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	AccessToken  string `toml:"access_token"`
}

// Map flattens the credentials for the services constructors.
func (g GeniusConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     g.ClientID,
		"client_secret": g.ClientSecret,
		"redirect_uri":  g.RedirectURI,
	}
}

// LastFMConfig contains the Last.fm API key and request budget.
type LastFMConfig struct {
	APIKey    string  `toml:"api_key"`
	RateLimit float64 `toml:"rate_limit"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// RecommendConfig tunes the sampler. Zero values fall back to the
// recommender defaults (20 draws, 5 results).
type RecommendConfig struct {
	SampleSize int `toml:"sample_size"`
	ResultSize int `toml:"result_size"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// SaveConfig writes the configuration back to disk as TOML. Tokens obtained
// during authorization are persisted this way.
func SaveConfig(path string, config *Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
