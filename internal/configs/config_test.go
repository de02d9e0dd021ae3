package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
)

func TestLoadConfigFromMissingFile(t *testing.T) {
	tempDir := t.TempDir()

	config, err := LoadConfigFrom(filepath.Join(tempDir, "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFrom failed: %v", err)
	}

	if config.Keys.Seed != DefaultSeed {
		t.Errorf("Expected default seed %q, got %q", DefaultSeed, config.Keys.Seed)
	}
	if config.Keys.Difficulty != DefaultDifficulty {
		t.Errorf("Expected difficulty %d, got %d", DefaultDifficulty, config.Keys.Difficulty)
	}
	if !config.Keys.RebuildOnStart {
		t.Error("Expected rebuild_on_start to default to true")
	}
	if !config.Audit.Enabled {
		t.Error("Expected audit to be enabled by default")
	}
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")

	content := "[keys]\nseed = \"custom\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom failed: %v", err)
	}

	if config.Keys.Seed != "custom" {
		t.Errorf("Expected seed %q, got %q", "custom", config.Keys.Seed)
	}
	if config.Keys.Difficulty != DefaultDifficulty {
		t.Errorf("Expected default difficulty, got %d", config.Keys.Difficulty)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"difficulty too small", "[keys]\ndifficulty = 1\n"},
		{"negative probe cap", "[keys]\nmax_probe_attempts = -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			_, err := LoadConfigFrom(path)
			if !errors.Is(err, kerrors.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadConfigMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[keys\nseed ="), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfigFrom(path); err == nil {
		t.Fatal("Expected error for malformed TOML")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	originalSettings := CrypterSettings
	CrypterSettings = &Settings{
		ConfigPath: filepath.Join(tempDir, "nested", "config.toml"),
		DataDir:    filepath.Join(tempDir, "data"),
	}
	defer func() {
		CrypterSettings = originalSettings
	}()

	config := DefaultConfig()
	config.Keys.Seed = "round trip"
	config.Keys.MaxProbeAttempts = 100
	config.Audit.Enabled = false

	if err := SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", *config, *loaded)
	}
}

func TestResolvedDataDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		dir  string
		want string
	}{
		{"", ""},
		{"/var/lib/crypter", "/var/lib/crypter"},
		{"~/keys", filepath.Join(home, "keys")},
		{"~", home},
	}

	for _, tt := range tests {
		config := DefaultConfig()
		config.Keys.DataDir = tt.dir
		if got := config.ResolvedDataDir(); got != tt.want {
			t.Errorf("ResolvedDataDir(%q) = %q, expected %q", tt.dir, got, tt.want)
		}
	}
}

func TestApplyConfig(t *testing.T) {
	originalSettings := CrypterSettings
	CrypterSettings = &Settings{DataDir: "/default"}
	defer func() {
		CrypterSettings = originalSettings
	}()

	ApplyConfig(DefaultConfig())
	if CrypterSettings.DataDir != "/default" {
		t.Errorf("Empty data_dir should keep the default, got %q", CrypterSettings.DataDir)
	}

	config := DefaultConfig()
	config.Keys.DataDir = "/custom"
	ApplyConfig(config)
	if CrypterSettings.DataDir != "/custom" {
		t.Errorf("Expected /custom, got %q", CrypterSettings.DataDir)
	}
}
