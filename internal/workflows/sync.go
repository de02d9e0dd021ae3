package workflows

import (
	"context"

	"github.com/PolarWolf314/crypter/internal/audit"
)

// SyncOptions configures the sync workflow.
type SyncOptions struct{}

// SyncResult contains the outcome of a sync operation.
type SyncResult struct {
	// Drift is the number of slots that differed before the sync.
	Drift int
}

// Sync overwrites the uncipher table with the cipher table. It is the
// single-host shortcut for applying every pending bullet.
func Sync(ctx context.Context, env Env, opts SyncOptions) (*SyncResult, error) {
	var result *SyncResult

	err := withLock(ctx, env, func() error {
		svc, err := openService(env, false)
		if err != nil {
			return err
		}
		if err := requireTables(svc); err != nil {
			return err
		}

		drift := svc.Status().Drift
		if err := svc.Sync(); err != nil {
			return err
		}
		result = &SyncResult{Drift: drift}
		return nil
	})
	if err != nil {
		return nil, err
	}

	record(env, audit.LogWithUser("sync"))
	return result, nil
}
