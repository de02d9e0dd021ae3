package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/crypter/internal/audit"
	"github.com/PolarWolf314/crypter/internal/crypter"
)

// CipherOptions configures the cipher workflow.
type CipherOptions struct {
	// Text is the plaintext message.
	Text string
}

// CipherResult contains the outcome of a cipher operation.
type CipherResult struct {
	crypter.CipherResult

	// Symbols is the number of input symbols, known or not.
	Symbols int
}

// Cipher encodes one message and advances the rotation protocol.
//
// Returns ErrTablesNotInitialized if the tables are missing and
// rebuild_on_start is off. A lossy result is returned without error; an
// aborted one returns the engine's error.
func Cipher(ctx context.Context, env Env, opts CipherOptions) (*CipherResult, error) {
	var result *CipherResult

	err := withLock(ctx, env, func() error {
		svc, err := openService(env, env.config().Keys.RebuildOnStart)
		if err != nil {
			return err
		}
		if err := requireTables(svc); err != nil {
			return err
		}

		result = &CipherResult{
			CipherResult: svc.Cipher(opts.Text),
			Symbols:      len([]rune(opts.Text)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordCipher(env, "cipher", result.CipherResult, result.Symbols)

	if result.Outcome == crypter.OutcomeAborted {
		return nil, fmt.Errorf("cipher aborted: %w", result.Err)
	}
	return result, nil
}

func recordCipher(env Env, op string, res crypter.CipherResult, symbols int) {
	entry := audit.LogWithUser(op)
	entry.Symbols = symbols
	entry.Unknown = len(res.Unknown)
	entry.Outcome = res.Outcome.String()
	if res.Outcome != crypter.OutcomeAborted {
		if res.Bullet.Placeholder {
			entry.Placeholder = true
		} else {
			entry.Slot = audit.SlotPtr(res.Bullet.Rotation.Slot)
		}
	}
	if res.Err != nil {
		entry.Error = res.Err.Error()
	}
	record(env, entry)
}

