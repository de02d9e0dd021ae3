package workflows

import (
	"context"

	"github.com/PolarWolf314/crypter/internal/audit"
	"github.com/PolarWolf314/crypter/internal/configs"
	"github.com/PolarWolf314/crypter/internal/crypter"
)

// StatusOptions configures the status workflow.
type StatusOptions struct{}

// StatusResult contains the state of the key tables and their files.
type StatusResult struct {
	crypter.Status

	ConfigPath string
	AuditPath  string

	// AuditEntries is the number of readable audit entries.
	AuditEntries int
}

// Status inspects the key tables without modifying them. It never rebuilds,
// whatever rebuild_on_start says, and takes no lock since table writes are
// atomic renames.
func Status(ctx context.Context, env Env, opts StatusOptions) (*StatusResult, error) {
	svc, err := openService(env, false)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Status:     svc.Status(),
		ConfigPath: configs.CrypterSettings.ConfigPath,
		AuditPath:  audit.LogPath(),
	}

	if entries, err := audit.ReadEntries(); err == nil {
		result.AuditEntries = len(entries)
	}

	return result, nil
}
