package cmd

import (
	"context"

	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or rebuild the key tables",
	Long: `Generates a new master table and writes it to the master, cipher and
uncipher table files, discarding every rotation made so far.

With a fixed keys.seed every installation builds the same tables, so two
peers that run init start in step.

Examples:
  crypter init
  crypter init --data-dir ./keys`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Building key tables...")
		defer cleanup()

		result, err := workflows.Init(context.Background(), env(), workflows.InitOptions{})
		if err != nil {
			return reportError(&spinner.FinalMSG, err)
		}

		Logger.Infof("Init command completed with fingerprint %s", result.Fingerprint)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Key tables created in " + ui.Path.Sprint(result.DataDir) + "\n" +
			"  " + ui.Highlight.Sprintf("%d", result.Codes) + " codes, fingerprint " + ui.Highlight.Sprint(result.Fingerprint) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("crypter cipher <text>") + " to encode a message"
		return nil
	},
}
