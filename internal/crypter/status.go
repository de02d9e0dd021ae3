package crypter

import (
	"github.com/PolarWolf314/crypter/internal/keystore"
)

// TableStatus describes one persisted table.
type TableStatus struct {
	Target      keystore.Target
	Path        string
	Present     bool
	Codes       int
	Duplicates  [][]int
	Malformed   []int
	Fingerprint string
}

// Healthy reports whether the table holds exactly size well-formed, distinct codes.
func (t TableStatus) Healthy(size int) bool {
	return t.Present && t.Codes == size && len(t.Duplicates) == 0 && len(t.Malformed) == 0
}

// Status is a snapshot of the service and its tables.
type Status struct {
	Mode        Mode
	LibrarySize int
	Width       int
	Dir         string
	Tables      []TableStatus

	// Drift is the number of slots where the uncipher table differs from the
	// cipher table.
	Drift int

	// Rotated is the number of slots where the cipher table differs from the
	// master table.
	Rotated int

	Bugs int
}

// Initialized reports whether every table file exists.
func (s Status) Initialized() bool {
	for _, t := range s.Tables {
		if !t.Present {
			return false
		}
	}
	return len(s.Tables) > 0
}

// Status inspects the persisted tables without modifying them.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Mode:        s.mode,
		LibrarySize: s.lib.Len(),
		Width:       s.width,
		Dir:         s.store.Dir(),
	}

	tables := make(map[keystore.Target]keystore.Table, len(keystore.Targets))
	for _, target := range keystore.Targets {
		ts := TableStatus{
			Target:  target,
			Path:    s.store.Path(target),
			Present: s.store.Exists(target),
		}
		if ts.Present {
			table, err := s.store.Load(target)
			if err == nil {
				tables[target] = table
				ts.Codes = len(table)
				ts.Duplicates = table.Duplicates()
				ts.Malformed = table.Malformed(s.width)
				ts.Fingerprint = table.Fingerprint()
			}
		}
		st.Tables = append(st.Tables, ts)
	}

	st.Drift = len(tables[keystore.Cipher].Diff(tables[keystore.Uncipher]))
	st.Rotated = len(tables[keystore.All].Diff(tables[keystore.Cipher]))

	if bugs, err := s.store.Bugs(); err == nil {
		st.Bugs = len(bugs)
	}
	return st
}
