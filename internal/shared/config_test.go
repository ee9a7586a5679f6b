package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Credentials.Spotify.ClientID != "your_spotify_client_id" {
			t.Errorf("expected spotify client_id your_spotify_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if config.Search.Market != "US" {
			t.Errorf("expected default market US, got %s", config.Search.Market)
		}

		if config.Search.LocalURL != "" {
			t.Errorf("expected empty local search URL, got %s", config.Search.LocalURL)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Credentials.Spotify.RedirectURI != defaultConfig.Credentials.Spotify.RedirectURI {
			t.Error("created config redirect URI doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:3000/callback"

[search]
local_url = "http://localhost:5000/search"
market = "GB"

[auth]
token_path = "/custom/token.json"

[server]
host = "0.0.0.0"
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Search.LocalURL != "http://localhost:5000/search" {
			t.Errorf("unexpected local search URL %s", config.Search.LocalURL)
		}
		if config.Search.Market != "GB" {
			t.Errorf("expected market GB, got %s", config.Search.Market)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected port 8080, got %d", config.Server.Port)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env_client")
		t.Setenv("LOCAL_SEARCH_URL", "http://127.0.0.1:9000/q")
		t.Setenv("SPOTIFY_COUNTRY", "SE")

		config := DefaultConfig()
		ApplyEnv(config)

		if config.Credentials.Spotify.ClientID != "env_client" {
			t.Errorf("expected env override for client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Search.LocalURL != "http://127.0.0.1:9000/q" {
			t.Errorf("expected env override for local_url, got %s", config.Search.LocalURL)
		}
		if config.Search.Market != "SE" {
			t.Errorf("expected env override for market, got %s", config.Search.Market)
		}
	})

	t.Run("TokenPath", func(t *testing.T) {
		config := DefaultConfig()
		config.Auth.TokenPath = "/explicit/token.json"

		path, err := config.TokenPath()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/explicit/token.json" {
			t.Errorf("expected explicit path, got %s", path)
		}

		config.Auth.TokenPath = ""
		path, err = config.TokenPath()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(path, filepath.Join(".spotify-mcp", "token.json")) {
			t.Errorf("expected default path under home, got %s", path)
		}
	})

	t.Run("SpotifyConfig Map", func(t *testing.T) {
		cfg := SpotifyConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "uri"}
		m := cfg.Map()

		if m["client_id"] != "id" || m["client_secret"] != "secret" || m["redirect_uri"] != "uri" {
			t.Errorf("unexpected credentials map: %v", m)
		}
	})
}
