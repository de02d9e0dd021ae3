// Package audit records crypter operations in an append-only log.
//
// Every operation that reads or changes the key tables (init, cipher,
// uncipher, apply, sync, files) is recorded next to the tables. The log
// never contains plaintext or ciphertext, only counts, slots and outcomes.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<data_dir>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - System user and a per-process session UUID
//   - Operation name
//   - Operation-specific details (slot, outcome, unknown count, files)
//
// # Usage
//
//	entry := audit.LogWithUser("cipher")
//	entry.Outcome = result.Outcome.String()
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
