// Package workflows provides high-level orchestration for crypter commands.
//
// Workflows coordinate the key tables (crypter), configuration (configs)
// and the audit trail (audit) to implement complete user-facing features.
// Each workflow handles a single command's business logic, independent of
// CLI concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Opening the key tables with the configured seed and difficulty
//   - Locking the data directory against other crypter processes
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Init: Regenerates the master table and resets the other two
//   - Cipher, Uncipher: Encode and decode one message
//   - Apply: Persists a bullet's rotation into the uncipher table
//   - Sync: Copies the cipher table over the uncipher table
//   - CipherFiles, UncipherFiles: Line-by-line file processing
//   - Status, Doctor: Inspect the tables
//   - Log: Reads the audit trail
//   - OpenChat: An interactive session that plays both peers
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Cipher(ctx, env, opts)
//	if errors.Is(err, kerrors.ErrTablesNotInitialized) {
//	    // Suggest `crypter init`
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It bounds the wait for the data directory lock and is checked between
// files.
package workflows
