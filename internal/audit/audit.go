package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/crypter/internal/configs"

	"github.com/google/uuid"
)

// FileName is the audit log's name inside the data directory.
const FileName = "audit.jsonl"

// session identifies every entry written by this process.
var session = uuid.NewString()

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	User      string `json:"user"`    // System user performing the action.
	Session   string `json:"session"` // One UUID per process.
	Operation string `json:"op"`      // Operation name.

	// Optional fields depending on operation.
	Slot        *int     `json:"slot,omitempty"`        // Rotated slot for cipher/apply.
	Placeholder bool     `json:"placeholder,omitempty"` // Cipher emitted a placeholder bullet.
	Symbols     int      `json:"symbols,omitempty"`     // Plaintext length for cipher/uncipher.
	Unknown     int      `json:"unknown,omitempty"`     // Symbols dropped by cipher.
	Outcome     string   `json:"outcome,omitempty"`     // ok, lossy or aborted.
	Fingerprint string   `json:"fingerprint,omitempty"` // Master table after init.
	Files       []string `json:"files,omitempty"`       // For files cipher/uncipher.
	Error       string   `json:"error,omitempty"`       // Failure reason for aborted operations.
}

// Session returns the identifier shared by this process's entries.
func Session() string {
	return session
}

// Log appends an entry to the audit log.
// If logging fails, it does not return an error.
// Operations should not fail just because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.Session == "" {
		entry.Session = session
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry with the user and session populated.
func LogWithUser(op string) Entry {
	return Entry{
		Operation: op,
		User:      configs.CrypterSettings.Username,
		Session:   session,
	}
}

// SlotPtr returns a pointer to slot for Entry.Slot.
func SlotPtr(slot int) *int {
	return &slot
}

// LogPath returns the path to the audit log file.
// Returns empty string if no data directory is configured.
func LogPath() string {
	dataDir := configs.CrypterSettings.DataDir
	if dataDir == "" {
		return ""
	}
	return filepath.Join(dataDir, FileName)
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
