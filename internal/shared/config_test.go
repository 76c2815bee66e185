package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "spindle.db" {
			t.Errorf("expected database path spindle.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Catalog.Source != "csv" {
			t.Errorf("expected catalog source csv, got %s", config.Catalog.Source)
		}

		if config.Catalog.SongsEN != "tracks_en.csv" {
			t.Errorf("expected songs_en tracks_en.csv, got %s", config.Catalog.SongsEN)
		}

		if config.Recommend.SampleSize != 20 || config.Recommend.ResultSize != 5 {
			t.Errorf("expected sample/result sizes 20/5, got %d/%d", config.Recommend.SampleSize, config.Recommend.ResultSize)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[catalog]
source = "sqlite"
dir = "/srv/catalog"
songs_en = "en.csv"
songs_fa = "fa.csv"
artists_en = "artists_en.csv"
artists_fa = "artists_fa.csv"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 9090

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:3000/callback"

[credentials.lastfm]
api_key = "test_api_key"
rate_limit = 2.5
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Catalog.Source != "sqlite" {
			t.Errorf("expected catalog source sqlite, got %s", config.Catalog.Source)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 9090 {
			t.Errorf("expected server port 9090, got %d", config.Server.Port)
		}

		if config.Credentials.LastFM.RateLimit != 2.5 {
			t.Errorf("expected lastfm rate limit 2.5, got %f", config.Credentials.LastFM.RateLimit)
		}
	})
}
