package crypter

import (
	"fmt"
	"sync"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
	"github.com/PolarWolf314/crypter/internal/keygen"
	"github.com/PolarWolf314/crypter/internal/keystore"
	"github.com/PolarWolf314/crypter/internal/library"
	logger "github.com/PolarWolf314/crypter/internal/logging"

	"github.com/spf13/afero"
)

// Options configures a Service.
type Options struct {
	// Fs is the filesystem holding the key tables. Defaults to the OS filesystem.
	Fs afero.Fs

	// Dir is the directory holding the key tables.
	Dir string

	// Seed makes table generation and rotation reproducible. Empty means random.
	Seed string

	// Width is the code length per symbol. Defaults to keygen.DefaultWidth.
	Width int

	// Library defaults to library.Default().
	Library *library.Library

	// RebuildOnStart rebuilds all three tables when the service opens.
	RebuildOnStart bool

	// MaxProbeAttempts caps the search for an unused rotation code. Zero means
	// the search never gives up.
	MaxProbeAttempts int

	Logger logger.Logger
}

// Service owns the key tables and the rotation mode for one process. All
// methods are safe for concurrent use; calls are serialized.
type Service struct {
	mu sync.Mutex

	lib   *library.Library
	store *keystore.Store
	gen   *keygen.Generator
	log   logger.Logger

	width     int
	maxProbes int

	mode        Mode
	cipherTable keystore.Table
}

// Open builds a service. With RebuildOnStart the tables are regenerated,
// otherwise the cipher table is loaded from disk; a missing table is logged
// and surfaces later as failed lookups.
func Open(opts Options) (*Service, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("%w: key directory is not set", kerrors.ErrInvalidConfig)
	}
	if opts.MaxProbeAttempts < 0 {
		return nil, fmt.Errorf("%w: max probe attempts must not be negative", kerrors.ErrInvalidConfig)
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	width := opts.Width
	if width <= 0 {
		width = keygen.DefaultWidth
	}
	// One-character codes cannot cover the library.
	if width < 2 {
		return nil, fmt.Errorf("%w: code width must be at least 2", kerrors.ErrInvalidConfig)
	}
	lib := opts.Library
	if lib == nil {
		lib = library.Default()
	}

	s := &Service{
		lib:       lib,
		store:     keystore.New(fs, opts.Dir, width, opts.Logger),
		gen:       keygen.New(opts.Seed, width),
		log:       opts.Logger,
		width:     width,
		maxProbes: opts.MaxProbeAttempts,
		mode:      ModeBootstrap,
	}

	if opts.RebuildOnStart {
		if err := s.Rebuild(); err != nil {
			return nil, fmt.Errorf("rebuilding key tables: %w", err)
		}
		return s, nil
	}

	s.reloadCipher()
	return s, nil
}

func (s *Service) Library() *library.Library {
	return s.lib
}

func (s *Service) Store() *keystore.Store {
	return s.store
}

func (s *Service) Width() int {
	return s.width
}

// Mode returns the current rotation mode.
func (s *Service) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Rebuild regenerates the master table, removes duplicate codes, and writes
// it to all three table files. The rotation mode is left unchanged.
func (s *Service) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.lib.Len()
	table := keystore.Chunk(s.gen.Stream(n*s.width), s.width)
	table = s.dedupe(table)

	for _, target := range keystore.Targets {
		if err := s.store.Save(target, table); err != nil {
			return err
		}
	}

	s.log.Infof("Rebuilt key tables with %d codes in %s", len(table), s.store.Dir())
	s.reloadCipher()
	return nil
}

// dedupe keeps the first occurrence of every code and fills the freed slots
// at the end with fresh codes not present anywhere in the table.
func (s *Service) dedupe(table keystore.Table) keystore.Table {
	seen := make(map[string]bool, len(table))
	out := make(keystore.Table, 0, len(table))
	for _, code := range table {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}

	if dropped := len(table) - len(out); dropped > 0 {
		s.log.Debugf("Replacing %d duplicate codes", dropped)
	}

	for len(out) < len(table) {
		code := s.gen.Code()
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}

// ApplyBullet persists the rotation carried by the ciphertext's bullet into
// the uncipher table. It reports false for placeholder bullets.
func (s *Service) ApplyBullet(ciphertext string) (Rotation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, raw, err := SplitCiphertext(ciphertext, s.width)
	if err != nil {
		return Rotation{}, false, err
	}
	bullet, err := ParseBullet(raw, s.width)
	if err != nil {
		return Rotation{}, false, err
	}
	if bullet.Placeholder {
		return Rotation{}, false, nil
	}

	rot := bullet.Rotation
	table, err := s.store.Load(keystore.Uncipher)
	if err != nil {
		return rot, false, err
	}
	if rot.Slot >= len(table) {
		return rot, false, fmt.Errorf("%w: slot %d, uncipher table holds %d codes", kerrors.ErrSlotOutOfRange, rot.Slot, len(table))
	}
	if idx := table.IndexOf(rot.Code); idx >= 0 && idx != rot.Slot {
		return rot, false, fmt.Errorf("%w: code already used by slot %d", kerrors.ErrMalformedBullet, idx)
	}

	table[rot.Slot] = rot.Code
	if err := s.store.Save(keystore.Uncipher, table); err != nil {
		return rot, false, err
	}

	s.log.Debugf("Applied rotation of slot %d to uncipher table", rot.Slot)
	return rot, true, nil
}

// Sync overwrites the uncipher table with the cipher table.
func (s *Service) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Copy(keystore.Cipher, keystore.Uncipher); err != nil {
		return fmt.Errorf("syncing uncipher table: %w", err)
	}
	return nil
}

// reloadCipher replaces the in-memory cipher table with the persisted one.
// Callers must hold s.mu, except during Open.
func (s *Service) reloadCipher() {
	table, err := s.store.Load(keystore.Cipher)
	if err != nil {
		s.log.Debugf("Cipher table unavailable: %v", err)
	}
	s.cipherTable = table
}
