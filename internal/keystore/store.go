package keystore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
	logger "github.com/PolarWolf314/crypter/internal/logging"

	"github.com/spf13/afero"
)

// Target selects one of the persisted key tables.
type Target int

const (
	// All is the master table. It is stored reversed on disk.
	All Target = iota
	// Cipher is the table used to encode.
	Cipher
	// Uncipher is the table used to decode.
	Uncipher
)

// Targets lists every table in a stable order.
var Targets = []Target{All, Cipher, Uncipher}

// BugsFile is the append-only log of symbols the library could not resolve.
const BugsFile = "bugs"

// FileName returns the on-disk name of the table.
func (t Target) FileName() string {
	switch t {
	case All:
		return "key_all"
	case Cipher:
		return "key_for_cipher"
	case Uncipher:
		return "key_for_uncipher"
	default:
		return fmt.Sprintf("key_unknown_%d", int(t))
	}
}

func (t Target) String() string {
	switch t {
	case All:
		return "master"
	case Cipher:
		return "cipher"
	case Uncipher:
		return "uncipher"
	default:
		return "unknown"
	}
}

// Store reads and writes key tables as flat fixed-width text files.
type Store struct {
	fs    afero.Fs
	dir   string
	width int
	log   logger.Logger
}

// New returns a store rooted at dir. width is the code length used to chunk
// table files.
func New(fs afero.Fs, dir string, width int, log logger.Logger) *Store {
	return &Store{
		fs:    fs,
		dir:   dir,
		width: width,
		log:   log,
	}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Width() int {
	return s.width
}

// Path returns the full path of the table file.
func (s *Store) Path(t Target) string {
	return filepath.Join(s.dir, t.FileName())
}

// Exists reports whether the table file is present.
func (s *Store) Exists(t Target) bool {
	ok, err := afero.Exists(s.fs, s.Path(t))
	return err == nil && ok
}

// Load reads a table. On failure the error is logged and an empty table is
// returned alongside an error wrapping ErrKeyFileUnreadable, so callers that
// ignore the error fail later at the point of lookup.
func (s *Store) Load(t Target) (Table, error) {
	path := s.Path(t)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		s.log.Warnf("Failed to read %s table from %s: %v", t, path, err)
		return Table{}, fmt.Errorf("%w: %s: %v", kerrors.ErrKeyFileUnreadable, path, err)
	}

	raw := string(data)
	if t == All {
		raw = reverse(raw)
	}

	table := Chunk(raw, s.width)
	s.log.Debugf("Loaded %d codes from %s", len(table), path)
	return table, nil
}

// Save persists a table. The content goes to a temporary file in the same
// directory which is then renamed over the target, so readers see either the
// old table or the new one.
func (s *Store) Save(t Target, table Table) error {
	raw := table.String()
	if t == All {
		raw = reverse(raw)
	}

	if err := s.fs.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}

	path := s.Path(t)
	if err := writeFileAtomic(s.fs, path, []byte(raw)); err != nil {
		return fmt.Errorf("writing %s table: %w", t, err)
	}

	s.log.Debugf("Saved %d codes to %s", len(table), path)
	return nil
}

// Copy replaces dst with the current content of src.
func (s *Store) Copy(src, dst Target) error {
	table, err := s.Load(src)
	if err != nil {
		return err
	}
	return s.Save(dst, table)
}

// AppendBug records an unresolvable symbol in the bug log.
func (s *Store) AppendBug(r rune) error {
	if err := s.fs.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}

	f, err := s.fs.OpenFile(filepath.Join(s.dir, BugsFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening bug log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(string(r) + "\n"); err != nil {
		return fmt.Errorf("writing bug log: %w", err)
	}
	return nil
}

// Bugs returns the recorded unknown symbols, oldest first. A missing log is
// not an error.
func (s *Store) Bugs() ([]string, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, BugsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bug log: %w", err)
	}

	var bugs []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			bugs = append(bugs, line)
		}
	}
	return bugs, nil
}

func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return err
	}

	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return err
	}
	return nil
}
