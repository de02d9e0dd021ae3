package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/crypter/internal/ui"
	"github.com/PolarWolf314/crypter/internal/workflows"

	"github.com/spf13/cobra"
)

var doctorJSONOutput bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
}

// resetDoctorCommandState resets the doctor command's global state for testing.
func resetDoctorCommandState() {
	doctorJSONOutput = false
}

// ExitError asks main to exit with Code without printing anything more.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on the key tables",
	Long: `Runs a series of health checks on the configuration and key tables and
reports issues.

The doctor command checks:
  - Configuration file validity
  - Data directory existence and permissions
  - Each table's size, uniqueness and code width
  - Drift between the cipher and uncipher tables
  - Unknown symbols recorded in the bug log

Exit codes:
  0 - All checks passed
  1 - Warnings found (non-critical issues)
  2 - Errors found (critical issues)

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	result, err := doctorChecks()
	if err != nil {
		return err
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status.String(), check.Message)
	}

	switch {
	case result.Summary.Errors > 0:
		return &ExitError{Code: 2}
	case result.Summary.Warnings > 0:
		return &ExitError{Code: 1}
	}
	return nil
}

// doctorChecks runs the workflow and prints the report while the spinner is
// active, so the spinner is cleaned up before runDoctor returns an exit code.
func doctorChecks() (*workflows.DoctorResult, error) {
	spinner, cleanup := startSpinner("Running health checks...")
	defer cleanup()

	result, err := workflows.Doctor(context.Background(), env(), workflows.DoctorOptions{})
	if err != nil {
		spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to run health checks: " + err.Error()
		return nil, err
	}

	if doctorJSONOutput {
		spinner.FinalMSG = ""
		spinner.Stop()
		return result, outputDoctorJSON(result)
	}

	spinner.Stop()
	printDoctorResults(result)
	switch {
	case result.Summary.Errors > 0:
		spinner.FinalMSG = ui.Error.Sprint("✗") + " Health checks completed with errors"
	case result.Summary.Warnings > 0:
		spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Health checks completed with warnings"
	default:
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Health checks completed"
	}
	return result, nil
}

// outputDoctorJSON outputs the result as JSON.
func outputDoctorJSON(result *workflows.DoctorResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// printDoctorResults prints the doctor results in a human-readable format.
func printDoctorResults(result *workflows.DoctorResult) {
	for _, check := range result.Checks {
		var statusIcon string
		switch check.Status {
		case workflows.CheckPass:
			statusIcon = ui.Success.Sprint("✓")
		case workflows.CheckWarning:
			statusIcon = ui.Warning.Sprint("⚠")
		case workflows.CheckError:
			statusIcon = ui.Error.Sprint("✗")
		}
		fmt.Printf("%s %s: %s\n", statusIcon, check.Name, check.Message)
	}

	fmt.Println()
	fmt.Printf("Summary: %d passed", result.Summary.Passed)
	if result.Summary.Warnings > 0 {
		fmt.Printf(", %s", ui.Warning.Sprint(fmt.Sprintf("%d warning(s)", result.Summary.Warnings)))
	}
	if result.Summary.Errors > 0 {
		fmt.Printf(", %s", ui.Error.Sprint(fmt.Sprintf("%d error(s)", result.Summary.Errors)))
	}
	fmt.Println()

	if len(result.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  %s %s\n", ui.Info.Sprint("→"), s)
		}
	}
	fmt.Println()
}
