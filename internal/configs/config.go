package configs

import (
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
	"github.com/PolarWolf314/crypter/internal/utils"
)

const (
	// DefaultSeed makes every installation rebuild the same tables unless
	// configured otherwise.
	DefaultSeed = "crypter"

	DefaultDifficulty = 15
)

type Config struct {
	Keys  KeysConfig  `toml:"keys" json:"keys"`
	Audit AuditConfig `toml:"audit" json:"audit"`
}

type KeysConfig struct {
	DataDir          string `toml:"data_dir" json:"data_dir"`
	Seed             string `toml:"seed" json:"seed"`
	Difficulty       int    `toml:"difficulty" json:"difficulty"`
	RebuildOnStart   bool   `toml:"rebuild_on_start" json:"rebuild_on_start"`
	MaxProbeAttempts int    `toml:"max_probe_attempts" json:"max_probe_attempts"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Keys: KeysConfig{
			Seed:           DefaultSeed,
			Difficulty:     DefaultDifficulty,
			RebuildOnStart: true,
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// LoadConfig loads the configuration from the settings' config path.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(CrypterSettings.ConfigPath)
}

// LoadConfigFrom loads a configuration file. Keys missing from the file keep
// their defaults, and a missing file yields DefaultConfig.
func LoadConfigFrom(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to the settings' config path.
func SaveConfig(config *Config) error {
	if err := SaveTOML(CrypterSettings.ConfigPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Keys.Difficulty < 2 {
		return fmt.Errorf("%w: difficulty must be at least 2, got %d", kerrors.ErrInvalidConfig, c.Keys.Difficulty)
	}
	if c.Keys.MaxProbeAttempts < 0 {
		return fmt.Errorf("%w: max_probe_attempts must not be negative, got %d", kerrors.ErrInvalidConfig, c.Keys.MaxProbeAttempts)
	}
	return nil
}

// ResolvedDataDir returns the configured data directory with a leading ~
// expanded, or an empty string when none is configured.
func (c *Config) ResolvedDataDir() string {
	if c.Keys.DataDir == "" {
		return ""
	}
	return utils.ExpandHome(c.Keys.DataDir)
}
