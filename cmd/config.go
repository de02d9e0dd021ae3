package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/crypter/internal/configs"
	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/utils"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var (
	configInitForce      bool
	configInitSeed       string
	configInitDifficulty int
	configShowJSON       bool

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage crypter configuration",
		Long: `Provides commands for managing the configuration file.

Examples:
  # Write a config file with the defaults
  crypter config init

  # Use your own seed
  crypter config init --seed "our shared secret" --force

  # Show the effective configuration
  crypter config show`,
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
)

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	configInitCmd.Flags().StringVar(&configInitSeed, "seed", "", "seed for table generation (empty keeps the default)")
	configInitCmd.Flags().IntVar(&configInitDifficulty, "difficulty", 0, "code length per symbol")
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigCommandState resets the config commands' global state for testing.
func resetConfigCommandState() {
	configInitForce = false
	configInitSeed = ""
	configInitDifficulty = 0
	configShowJSON = false
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config init command")
	path := configs.CrypterSettings.ConfigPath

	if utils.FileExists(path) && !configInitForce {
		fmt.Println(ui.Error.Sprint("✗") + " Config file already exists at " + ui.Path.Sprint(path) + "\n" +
			ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it")
		return ErrReported
	}

	cfg := configs.DefaultConfig()
	cfg.Keys.DataDir = configs.CrypterSettings.DataDir
	if configInitSeed != "" {
		cfg.Keys.Seed = configInitSeed
	}
	if configInitDifficulty != 0 {
		cfg.Keys.Difficulty = configInitDifficulty
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println(formatError(err))
		return ErrReported
	}

	if err := configs.SaveConfig(cfg); err != nil {
		return Logger.ErrorfAndReturn("Failed to save config: %v", err)
	}

	fmt.Println(ui.Success.Sprint("✓") + " Config written to " + ui.Path.Sprint(path))
	if cfg.Keys.Difficulty != configs.DefaultDifficulty || cfg.Keys.Seed != configs.DefaultSeed {
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("crypter init") + " to rebuild the tables with the new settings")
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config show command")

	cfg := *appConfig
	cfg.Keys.DataDir = configs.CrypterSettings.DataDir

	if configShowJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(ui.Muted.Sprint("# " + configs.CrypterSettings.ConfigPath))
	return toml.NewEncoder(os.Stdout).Encode(cfg)
}
