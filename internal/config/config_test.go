package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsAreValidOnceCredentialsSet(t *testing.T) {
	cfg := Default()
	if cfg.Workers != 8 || cfg.PageLimit != 100 || cfg.OutputDir != "downloaded_audio" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing credentials to fail validation")
	}

	cfg.ClientID = "id"
	cfg.ClientSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Workers = 0
	cfg.WarningBehavior = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"client id", "client secret", "workers", "loud"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err.Error(), want)
		}
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	fileCfg := Default()
	fileCfg.ClientID = "from-file"
	fileCfg.ClientSecret = "file-secret"
	fileCfg.Workers = 3
	if err := SaveConfig(path, fileCfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	t.Setenv("SPOTIFY_CLIENT_ID", "from-env")
	t.Setenv("SYD_PAGE_LIMIT", "20")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ClientID != "from-env" {
		t.Errorf("env should override file, got %q", cfg.ClientID)
	}
	if cfg.ClientSecret != "file-secret" {
		t.Errorf("file value lost, got %q", cfg.ClientSecret)
	}
	if cfg.Workers != 3 {
		t.Errorf("expected workers from file, got %d", cfg.Workers)
	}
	if cfg.PageLimit != 20 {
		t.Errorf("expected page limit from env, got %d", cfg.PageLimit)
	}
	if cfg.AudioFormat != DefaultAudioFormat {
		t.Errorf("default lost, got %q", cfg.AudioFormat)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")
	if err := SaveConfig(path, Default()); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestAlbumPageLimit(t *testing.T) {
	cfg := Default()
	if got := cfg.AlbumPageLimit(); got != MaxAlbumPageLimit {
		t.Errorf("expected clamp to %d, got %d", MaxAlbumPageLimit, got)
	}
	cfg.PageLimit = 10
	if got := cfg.AlbumPageLimit(); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
}

func TestYAMLConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("spotify_client_id: yaml-id\nworkers: 2\nmetrics_file: run.prom\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadConfig(path, cfg); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ClientID != "yaml-id" || cfg.Workers != 2 || cfg.MetricsFile != "run.prom" {
		t.Errorf("YAML values not applied: %+v", cfg)
	}
	if cfg.PageLimit != DefaultPageLimit {
		t.Errorf("unset YAML key should keep default, got %d", cfg.PageLimit)
	}

	out := filepath.Join(t.TempDir(), "saved.yml")
	if err := SaveConfig(out, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "spotify_client_id: yaml-id") {
		t.Errorf("saved YAML missing key:\n%s", data)
	}
}
