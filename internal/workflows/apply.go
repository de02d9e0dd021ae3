package workflows

import (
	"context"

	"github.com/PolarWolf314/crypter/internal/audit"
	"github.com/PolarWolf314/crypter/internal/crypter"
)

// ApplyOptions configures the apply workflow.
type ApplyOptions struct {
	// Ciphertext carries the bullet to apply. Only its trailer is read.
	Ciphertext string
}

// ApplyResult contains the outcome of an apply operation.
type ApplyResult struct {
	Rotation crypter.Rotation

	// Applied is false for placeholder bullets, which carry no rotation.
	Applied bool
}

// Apply persists the rotation carried by a ciphertext's bullet into the
// uncipher table, keeping a receiver in step with the sender.
func Apply(ctx context.Context, env Env, opts ApplyOptions) (*ApplyResult, error) {
	var result *ApplyResult

	err := withLock(ctx, env, func() error {
		svc, err := openService(env, false)
		if err != nil {
			return err
		}
		if err := requireTables(svc); err != nil {
			return err
		}

		rot, applied, err := svc.ApplyBullet(opts.Ciphertext)
		if err != nil {
			return err
		}
		result = &ApplyResult{Rotation: rot, Applied: applied}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("apply")
	if result.Applied {
		entry.Slot = audit.SlotPtr(result.Rotation.Slot)
	} else {
		entry.Placeholder = true
	}
	record(env, entry)

	return result, nil
}
