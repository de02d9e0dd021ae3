package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PolarWolf314/crypter/internal/crypter"
	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/utils"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// bannerMinWidth is the narrowest terminal the chat banner fits in.
const bannerMinWidth = 60

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive session that ciphers and unciphers each line",
	Long: `Reads messages line by line. Each one is ciphered, printed, unciphered
and printed again, and its bullet applied, so the tables rotate the way
they would between two peers in step.

The data directory stays locked for the whole session. End it with an
empty line, "exit" or Ctrl-D.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting chat command")

		chat, err := workflows.OpenChat(context.Background(), env())
		if err != nil {
			var msg string
			err = reportError(&msg, err)
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
			return err
		}
		defer func() {
			if err := chat.Close(); err != nil {
				Logger.Warnf("Failed to release lock: %v", err)
			}
		}()

		interactive := utils.IsTerminal()
		if interactive {
			printBanner(cmd.OutOrStdout())
		}

		return runChat(chat, cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
	},
}

func printBanner(out io.Writer) {
	if utils.TerminalWidth(0) < bannerMinWidth {
		fmt.Fprintln(out, ui.Success.Sprint("crypter chat"))
		return
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, figure.NewFigure("crypter", "small", true).String())
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Muted.Sprint("empty line or exit to quit"))
}

func runChat(chat *workflows.Chat, in io.Reader, out io.Writer, interactive bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, ui.Info.Sprint("> "))
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" || line == "exit" {
			return nil
		}

		turn, err := chat.Exchange(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatError(err))
			continue
		}

		if turn.Cipher.Outcome == crypter.OutcomeLossy {
			Logger.WarnfAlways("Dropped %d unknown symbols: %q", len(turn.Cipher.Unknown), string(turn.Cipher.Unknown))
		}

		bullet := ui.Muted.Sprint("placeholder")
		if !turn.Cipher.Bullet.Placeholder {
			bullet = ui.Highlight.Sprintf("slot %03d", turn.Cipher.Bullet.Rotation.Slot)
		}

		fmt.Fprintf(out, "%s %s %s\n", ui.Info.Sprint("cipher:  "), ui.Ciphertext.Sprint(turn.Cipher.Text), bullet)
		fmt.Fprintf(out, "%s %s\n", ui.Info.Sprint("uncipher:"), ui.Plaintext.Sprint(turn.Uncipher.Text))
	}
}
