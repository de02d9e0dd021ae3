package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/crypter/internal/audit"
	"github.com/PolarWolf314/crypter/internal/keystore"
)

// InitOptions configures the init workflow.
type InitOptions struct{}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// DataDir is where the tables were written.
	DataDir string

	// Codes is the number of codes in each table.
	Codes int

	// Fingerprint identifies the new master table.
	Fingerprint string
}

// Init regenerates the master table and writes it to all three table files,
// discarding every rotation made so far.
func Init(ctx context.Context, env Env, opts InitOptions) (*InitResult, error) {
	var result *InitResult

	err := withLock(ctx, env, func() error {
		// Opening with rebuild regenerates the tables exactly once.
		svc, err := openService(env, true)
		if err != nil {
			return err
		}

		master, err := svc.Store().Load(keystore.All)
		if err != nil {
			return fmt.Errorf("reading new master table: %w", err)
		}

		result = &InitResult{
			DataDir:     env.DataDir(),
			Codes:       len(master),
			Fingerprint: master.Fingerprint(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("init")
	entry.Fingerprint = result.Fingerprint
	record(env, entry)

	return result, nil
}
