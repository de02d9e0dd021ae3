// Package errors provides typed error values for crypter.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Symbol errors: input the library cannot represent (ErrUnknownSymbol)
//   - Key table errors: persisted table problems (ErrKeyFileUnreadable,
//     ErrDuplicateCodeExhaustion)
//   - Decode errors: ciphertext that does not match the active table
//     (ErrChunkNotFound, ErrMalformedBullet)
//   - Configuration and file errors (ErrInvalidConfig, ErrNoFilesFound)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading %s: %w", path, errors.ErrKeyFileUnreadable)
//
// Handle them at the CLI layer:
//
//	if errors.Is(res.Err, kerrors.ErrChunkNotFound) {
//	    // The uncipher table is out of sync with the sender.
//	}
package errors
