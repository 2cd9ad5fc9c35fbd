package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Sync.ArtistsFile != "artists.txt" {
			t.Errorf("expected default artists file artists.txt, got %s", config.Sync.ArtistsFile)
		}
		if !config.Sync.DryRun {
			t.Error("expected dry run to default to true")
		}
		if config.Sync.DelaySeconds != 2.0 {
			t.Errorf("expected default delay 2.0, got %v", config.Sync.DelaySeconds)
		}
		if config.YouTube.ProxyURL == "" {
			t.Error("expected default proxy URL to be set")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[sync]
artists_file = "bands.txt"
delay_seconds = 0.5
dry_run = false

[youtube]
proxy_url = "http://localhost:9000"

[database]
path = ":memory:"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if config.Sync.ArtistsFile != "bands.txt" {
			t.Errorf("expected bands.txt, got %s", config.Sync.ArtistsFile)
		}
		if config.Sync.DryRun {
			t.Error("expected dry run false")
		}
		if config.YouTube.ProxyURL != "http://localhost:9000" {
			t.Errorf("unexpected proxy URL %s", config.YouTube.ProxyURL)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("LoadConfig invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[sync\nbroken"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile() error = %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created config should be loadable: %v", err)
		}
		if config.Sync.ArtistsFile == "" {
			t.Error("created config should carry defaults")
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config already exists")
		}
	})
}

func TestSyncConfigDelay(t *testing.T) {
	tc := []struct {
		name    string
		seconds float64
		wantMS  int64
	}{
		{name: "two seconds", seconds: 2.0, wantMS: 2000},
		{name: "fractional", seconds: 0.25, wantMS: 250},
		{name: "zero", seconds: 0, wantMS: 0},
		{name: "negative clamps to zero", seconds: -1, wantMS: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := SyncConfig{DelaySeconds: tt.seconds}.Delay()
			if got.Milliseconds() != tt.wantMS {
				t.Errorf("Delay() = %v, want %dms", got, tt.wantMS)
			}
		})
	}
}
