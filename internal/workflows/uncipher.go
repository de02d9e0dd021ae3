package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/crypter/internal/audit"
	"github.com/PolarWolf314/crypter/internal/crypter"
)

// UncipherOptions configures the uncipher workflow.
type UncipherOptions struct {
	// Text is the ciphertext, bullet included.
	Text string

	// Apply persists the bullet's rotation into the uncipher table after a
	// successful decode.
	Apply bool
}

// UncipherResult contains the outcome of an uncipher operation.
type UncipherResult struct {
	crypter.UncipherResult

	// Applied is true when the pending rotation was written to the uncipher
	// table.
	Applied bool
}

// Uncipher decodes one ciphertext. The bullet's rotation is only persisted
// when opts.Apply is set; otherwise run Apply or Sync to keep the uncipher
// table current.
//
// Returns ErrMalformedCiphertext, ErrMalformedBullet or ErrChunkNotFound
// (wrapped) when decoding aborts.
func Uncipher(ctx context.Context, env Env, opts UncipherOptions) (*UncipherResult, error) {
	var result *UncipherResult

	err := withLock(ctx, env, func() error {
		svc, err := openService(env, env.config().Keys.RebuildOnStart)
		if err != nil {
			return err
		}
		if err := requireTables(svc); err != nil {
			return err
		}

		result = &UncipherResult{UncipherResult: svc.Uncipher(opts.Text)}
		if result.Outcome != crypter.OutcomeOK || !opts.Apply || result.Pending == nil {
			return nil
		}

		_, applied, err := svc.ApplyBullet(opts.Text)
		if err != nil {
			return fmt.Errorf("applying rotation: %w", err)
		}
		result.Applied = applied
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("uncipher")
	entry.Outcome = result.Outcome.String()
	entry.Placeholder = result.Bullet.Placeholder
	if result.Pending != nil {
		entry.Slot = audit.SlotPtr(result.Pending.Slot)
	}
	if result.Outcome == crypter.OutcomeOK {
		entry.Symbols = len([]rune(result.Text))
	}
	if result.Err != nil {
		entry.Error = result.Err.Error()
	}
	record(env, entry)

	if result.Outcome == crypter.OutcomeAborted {
		return nil, fmt.Errorf("uncipher aborted: %w", result.Err)
	}
	return result, nil
}
