package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/crypter/internal/crypter"
	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/utils"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/spf13/cobra"
)

var cipherCmd = &cobra.Command{
	Use:   "cipher [text...]",
	Short: "Encode a message",
	Long: `Encodes a message with the cipher table and appends a bullet. Arguments
are joined with spaces; without arguments the message is read from stdin.

Symbols outside the library are dropped and recorded in the bug log.

Examples:
  crypter cipher hello world
  echo "hello world" | crypter cipher`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting cipher command")

		text, err := messageFrom(args)
		if err != nil {
			return err
		}

		result, err := workflows.Cipher(context.Background(), env(), workflows.CipherOptions{Text: text})
		if err != nil {
			var msg string
			err = reportError(&msg, err)
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
			return err
		}

		if result.Outcome == crypter.OutcomeLossy {
			Logger.WarnfAlways("Dropped %d unknown symbols: %q", len(result.Unknown), string(result.Unknown))
		}
		if result.Bullet.Placeholder {
			Logger.Debugf("Emitted placeholder bullet")
		} else {
			Logger.Debugf("Rotated slot %d", result.Bullet.Rotation.Slot)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Ciphertext.Sprint(result.Text))
		return nil
	},
}

// messageFrom joins args, or reads stdin when there are none. A single
// trailing newline from piped input is dropped.
func messageFrom(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := utils.ReadStdin()
	if err != nil {
		return "", err
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
