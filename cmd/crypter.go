package cmd

import (
	"errors"

	"github.com/PolarWolf314/crypter/internal/configs"
	logger "github.com/PolarWolf314/crypter/internal/logging"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrReported marks a failure whose message has already been printed. main
// exits non-zero without printing it again.
var ErrReported = errors.New("error already reported")

var (
	verbose    bool
	debug      bool
	dataDir    string
	configPath string

	Logger    logger.Logger
	appConfig *configs.Config

	RootCmd = &cobra.Command{
		Use:   "crypter",
		Short: "Substitution cipher with rotating, file-backed key tables",
		Long: `crypter encodes text with a table of random codes, one per symbol, and
rotates one code with every message. Each ciphertext carries a trailer, the
bullet, that tells the receiver which code changed.

Key tables live in the data directory and are shared by every command. Run
'crypter init' once to create them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the key tables (overrides keys.data_dir)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(cipherCmd)
	RootCmd.AddCommand(uncipherCmd)
	RootCmd.AddCommand(applyCmd)
	RootCmd.AddCommand(syncCmd)
	RootCmd.AddCommand(filesCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(chatCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// setup builds the logger and resolves configuration. Flags override the
// config file, which overrides the defaults.
func setup(cmd *cobra.Command, args []string) error {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	}
	Logger.Debugf("Initializing crypter with verbose=%t, debug=%t", verbose, debug)

	if configPath != "" {
		configs.CrypterSettings.ConfigPath = configPath
	}

	cfg, err := configs.LoadConfig()
	if err != nil {
		// config init --force must be able to replace a broken file.
		if cmd.Name() == configInitCmd.Name() && cmd.Parent() == ConfigCmd {
			Logger.Warnf("Ignoring invalid config: %v", err)
			cfg = configs.DefaultConfig()
		} else {
			return Logger.ErrorfAndReturn("Failed to load config %s: %v", configs.CrypterSettings.ConfigPath, err)
		}
	}
	configs.ApplyConfig(cfg)

	if dataDir != "" {
		configs.CrypterSettings.DataDir = dataDir
	}
	Logger.Debugf("Config: %s, data directory: %s", configs.CrypterSettings.ConfigPath, configs.CrypterSettings.DataDir)

	appConfig = cfg
	return nil
}

// env returns the workflow environment for the current invocation.
func env() workflows.Env {
	return workflows.Env{
		Config: appConfig,
		Logger: Logger,
	}
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	dataDir = ""
	configPath = ""
	appConfig = nil
	resetUncipherCommandState()
	resetFilesCommandState()
	resetLogCommandState()
	resetConfigCommandState()
	resetDoctorCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed marks on cmd's flags and those of
// every subcommand, so one test's flags do not leak into the next.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
