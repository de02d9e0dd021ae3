package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the key tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		result, err := workflows.Status(context.Background(), env(), workflows.StatusOptions{})
		if err != nil {
			var msg string
			err = reportError(&msg, err)
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Field("Data dir", 10, ui.Path.Sprint(result.Dir)))
		fmt.Fprintln(out, ui.Field("Config", 10, ui.Path.Sprint(result.ConfigPath)))
		fmt.Fprintln(out, ui.Field("Library", 10, fmt.Sprintf("%d symbols", result.LibrarySize)))
		fmt.Fprintln(out, ui.Field("Difficulty", 10, fmt.Sprintf("%d", result.Width)))
		fmt.Fprintln(out)

		for _, t := range result.Tables {
			detail := ui.Muted.Sprint("missing")
			if t.Present {
				detail = fmt.Sprintf("%d codes  %s", t.Codes, ui.Highlight.Sprint(t.Fingerprint))
			}
			fmt.Fprintln(out, ui.Mark(t.Healthy(result.LibrarySize))+" "+ui.Field(t.Target.String(), 8, detail))
		}

		if !result.Initialized() {
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("crypter init")+" to create the key tables")
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.Field("Rotated", 10, fmt.Sprintf("%d slots since init", result.Rotated)))
		drift := fmt.Sprintf("%d slots", result.Drift)
		if result.Drift > 0 {
			drift = ui.Warning.Sprint(drift) + " " + ui.Muted.Sprint("apply pending bullets or sync")
		}
		fmt.Fprintln(out, ui.Field("Drift", 10, drift))
		fmt.Fprintln(out, ui.Field("Bugs", 10, fmt.Sprintf("%d unknown symbols", result.Bugs)))
		fmt.Fprintln(out, ui.Field("Audit", 10, fmt.Sprintf("%d entries", result.AuditEntries)))
		return nil
	},
}
