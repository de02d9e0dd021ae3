package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/utils"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/spf13/cobra"
)

var filesDryRun bool

func init() {
	filesCmd.PersistentFlags().BoolVar(&filesDryRun, "dry-run", false, "list the files without processing them")

	filesCmd.AddCommand(filesCipherCmd)
	filesCmd.AddCommand(filesUncipherCmd)
}

// resetFilesCommandState resets the files commands' global state for testing.
func resetFilesCommandState() {
	filesDryRun = false
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Cipher or uncipher files line by line",
	Long: `Processes whole files, one message per line. Patterns may be paths,
directories or globs with ** support.

Files are processed in sorted order and every line rotates the tables, so
uncipher a set of files in one run, in the same grouping they were ciphered.

Examples:
  crypter files cipher notes/*.txt
  crypter files uncipher "notes/**/*.crypt"`,
}

var filesCipherCmd = &cobra.Command{
	Use:   "cipher <patterns...>",
	Short: "Cipher files into <file>.crypt",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(args, true)
	},
}

var filesUncipherCmd = &cobra.Command{
	Use:   "uncipher <patterns...>",
	Short: "Uncipher .crypt files back to their original names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(args, false)
	},
}

func runFiles(patterns []string, forCipher bool) error {
	verb := "Unciphering"
	run := workflows.UncipherFiles
	if forCipher {
		verb = "Ciphering"
		run = workflows.CipherFiles
	}

	Logger.Infof("Starting files command for %d patterns", len(patterns))
	spinner, cleanup := startSpinner(verb + " files...")
	defer cleanup()

	result, err := run(context.Background(), env(), workflows.FilesOptions{
		Patterns: patterns,
		DryRun:   filesDryRun,
	})
	if err != nil {
		return reportError(&spinner.FinalMSG, err)
	}

	if result.DryRun {
		spinner.FinalMSG = ui.Warning.Sprint("[dry-run]") + " Would write:" + utils.FormatPaths(result.Outputs())
		return nil
	}

	lossy := 0
	for _, f := range result.Files {
		lossy += f.Lossy
	}

	msg := ui.Success.Sprint("✓") + " " + fmt.Sprintf("%s complete, wrote:", verb) + utils.FormatPaths(result.Outputs())
	if lossy > 0 {
		msg += ui.Warning.Sprint("⚠") + fmt.Sprintf(" %d lines dropped unknown symbols", lossy)
	}
	spinner.FinalMSG = msg
	return nil
}
