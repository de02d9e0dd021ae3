package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply [ciphertext]",
	Short: "Persist a ciphertext's rotation into the uncipher table",
	Long: `Reads the bullet at the end of a ciphertext and writes the code it
carries into the uncipher table. Apply bullets in the order the messages
were sent. Without an argument the ciphertext is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apply command")
		spinner, cleanup := startSpinner("Applying rotation...")
		defer cleanup()

		text, err := messageFrom(args)
		if err != nil {
			return err
		}

		result, err := workflows.Apply(context.Background(), env(), workflows.ApplyOptions{Ciphertext: text})
		if err != nil {
			return reportError(&spinner.FinalMSG, err)
		}

		if !result.Applied {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " Placeholder bullet, nothing to apply"
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Applied rotation of " + ui.Highlight.Sprint(fmt.Sprintf("slot %03d", result.Rotation.Slot))
		return nil
	},
}
