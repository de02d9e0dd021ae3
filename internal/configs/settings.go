package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/crypter/internal/utils"
)

type Settings struct {
	// ConfigPath is the TOML configuration file.
	ConfigPath string
	// DataDir holds the key tables, the bug log and the audit log.
	DataDir  string
	Username string
}

var CrypterSettings *Settings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		// Audit entries fall back to an empty user.
		username = ""
	}

	CrypterSettings = &Settings{
		ConfigPath: filepath.Join(configDir, "crypter", "config.toml"),
		DataDir:    filepath.Join(dataDir, "crypter"),
		Username:   username,
	}
}

// ApplyConfig points DataDir at the configured directory, if any.
func ApplyConfig(cfg *Config) {
	if dir := cfg.ResolvedDataDir(); dir != "" {
		CrypterSettings.DataDir = dir
	}
}
