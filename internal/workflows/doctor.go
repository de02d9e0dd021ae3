package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/crypter/internal/configs"
	"github.com/PolarWolf314/crypter/internal/crypter"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct{}

// doctorState is what the checks inspect.
type doctorState struct {
	dataDir string
	status  crypter.Status
}

// Doctor runs health checks on the configuration and the key tables.
//
// The doctor workflow checks:
//   - Configuration file validity
//   - Data directory existence and permissions
//   - Each table's presence, size, uniqueness and code width
//   - Drift between the cipher and uncipher tables
//   - Unknown symbols recorded in the bug log
func Doctor(ctx context.Context, env Env, opts DoctorOptions) (*DoctorResult, error) {
	results := []CheckResult{checkConfig()}

	svc, err := openService(env, false)
	if err != nil {
		results = append(results, CheckResult{
			Name:       "Key tables",
			Status:     CheckError,
			Message:    fmt.Sprintf("Cannot open key tables: %v", err),
			Suggestion: "Fix the configuration, then run 'crypter init'",
		})
		return summarize(results), nil
	}

	state := doctorState{
		dataDir: env.DataDir(),
		status:  svc.Status(),
	}

	results = append(results, checkDataDir(state))
	for _, table := range state.status.Tables {
		results = append(results, checkTable(state, table))
	}
	results = append(results, checkDrift(state), checkBugs(state))

	return summarize(results), nil
}

func summarize(results []CheckResult) *DoctorResult {
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}
}

// checkConfig checks that the config file, if any, parses and validates.
func checkConfig() CheckResult {
	path := configs.CrypterSettings.ConfigPath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Configuration",
			Status:  CheckPass,
			Message: "No config file, using defaults",
		}
	}

	if _, err := configs.LoadConfigFrom(path); err != nil {
		return CheckResult{
			Name:       "Configuration",
			Status:     CheckError,
			Message:    fmt.Sprintf("Invalid config: %v", err),
			Suggestion: fmt.Sprintf("Fix %s or regenerate it with 'crypter config init --force'", path),
		}
	}

	return CheckResult{
		Name:    "Configuration",
		Status:  CheckPass,
		Message: "Configuration valid",
	}
}

// checkDataDir checks that the data directory exists and is private.
func checkDataDir(state doctorState) CheckResult {
	info, err := os.Stat(state.dataDir)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       "Data directory",
			Status:     CheckError,
			Message:    fmt.Sprintf("%s does not exist", state.dataDir),
			Suggestion: "Run 'crypter init' to create the key tables",
		}
	}
	if err != nil {
		return CheckResult{
			Name:    "Data directory",
			Status:  CheckError,
			Message: fmt.Sprintf("Cannot stat %s: %v", state.dataDir, err),
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:       "Data directory",
			Status:     CheckError,
			Message:    fmt.Sprintf("%s is not a directory", state.dataDir),
			Suggestion: "Point keys.data_dir at a directory",
		}
	}

	if perm := info.Mode().Perm(); perm&0077 != 0 {
		return CheckResult{
			Name:       "Data directory",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s is accessible by other users (%04o)", state.dataDir, perm),
			Suggestion: fmt.Sprintf("Run 'chmod 700 %s'", state.dataDir),
		}
	}

	return CheckResult{
		Name:    "Data directory",
		Status:  CheckPass,
		Message: "Data directory exists and is private",
	}
}

// checkTable checks one table's presence, size, uniqueness and widths.
func checkTable(state doctorState, table crypter.TableStatus) CheckResult {
	name := fmt.Sprintf("Table %s", table.Target)
	size := state.status.LibrarySize

	switch {
	case !table.Present:
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%s not found", table.Path),
			Suggestion: "Run 'crypter init' to create the key tables",
		}
	case table.Codes != size:
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Holds %d codes, library has %d symbols", table.Codes, size),
			Suggestion: "Run 'crypter init' to rebuild the key tables",
		}
	case len(table.Duplicates) > 0:
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%d codes are used by more than one slot", len(table.Duplicates)),
			Suggestion: "Run 'crypter init' to rebuild the key tables",
		}
	case len(table.Malformed) > 0:
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%d codes are not %d characters long", len(table.Malformed), state.status.Width),
			Suggestion: "Check keys.difficulty matches the width the tables were built with",
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: fmt.Sprintf("%d unique codes, fingerprint %s", table.Codes, table.Fingerprint),
	}
}

// checkDrift checks whether the uncipher table lags the cipher table.
func checkDrift(state doctorState) CheckResult {
	if !state.status.Initialized() {
		return CheckResult{
			Name:    "Table drift",
			Status:  CheckWarning,
			Message: "Cannot compare tables until they exist",
		}
	}
	if drift := state.status.Drift; drift > 0 {
		return CheckResult{
			Name:       "Table drift",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Uncipher table differs from cipher table in %d slots", drift),
			Suggestion: "Apply pending bullets with 'crypter apply' or run 'crypter sync' on the sending host",
		}
	}
	return CheckResult{
		Name:    "Table drift",
		Status:  CheckPass,
		Message: fmt.Sprintf("Uncipher table in step (%d slots rotated since init)", state.status.Rotated),
	}
}

// checkBugs checks whether unknown symbols have been recorded.
func checkBugs(state doctorState) CheckResult {
	if state.status.Bugs > 0 {
		return CheckResult{
			Name:       "Unknown symbols",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%d unknown symbols were dropped from messages", state.status.Bugs),
			Suggestion: "Review the bug log in the data directory",
		}
	}
	return CheckResult{
		Name:    "Unknown symbols",
		Status:  CheckPass,
		Message: "No unknown symbols recorded",
	}
}

func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
