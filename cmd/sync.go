package cmd

import (
	"context"

	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy the cipher table over the uncipher table",
	Long: `Overwrites the uncipher table with the cipher table. Use it when the
sender and receiver share a data directory, instead of applying every
bullet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sync command")
		spinner, cleanup := startSpinner("Synchronizing tables...")
		defer cleanup()

		result, err := workflows.Sync(context.Background(), env(), workflows.SyncOptions{})
		if err != nil {
			return reportError(&spinner.FinalMSG, err)
		}

		if result.Drift == 0 {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Uncipher table was already in step"
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Uncipher table synchronized " +
			ui.Muted.Sprintf("%d slots updated", result.Drift)
		return nil
	},
}
