package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/spf13/cobra"
)

var uncipherApply bool

func init() {
	uncipherCmd.Flags().BoolVar(&uncipherApply, "apply", false, "persist the bullet's rotation into the uncipher table")
}

// resetUncipherCommandState resets the uncipher command's global state for testing.
func resetUncipherCommandState() {
	uncipherApply = false
}

var uncipherCmd = &cobra.Command{
	Use:   "uncipher [ciphertext]",
	Short: "Decode a ciphertext",
	Long: `Decodes a ciphertext produced by 'crypter cipher'. Without an argument
the ciphertext is read from stdin.

A real bullet carries the sender's rotation. It is only written to the
uncipher table with --apply, or later with 'crypter apply'.

Examples:
  crypter uncipher --apply "$CIPHERTEXT"
  crypter cipher hello | crypter uncipher`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting uncipher command")

		text, err := messageFrom(args)
		if err != nil {
			return err
		}

		result, err := workflows.Uncipher(context.Background(), env(), workflows.UncipherOptions{
			Text:  text,
			Apply: uncipherApply,
		})
		if err != nil {
			var msg string
			err = reportError(&msg, err)
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
			return err
		}

		switch {
		case result.Applied:
			Logger.Infof("Applied rotation of slot %d", result.Pending.Slot)
		case result.Pending != nil:
			Logger.Infof("Rotation of slot %d is pending, run 'crypter apply' to persist it", result.Pending.Slot)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Plaintext.Sprint(result.Text))
		return nil
	},
}
