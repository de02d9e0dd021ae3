package crypter

import (
	"fmt"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
	"github.com/PolarWolf314/crypter/internal/keystore"
)

// Mode is the rotation protocol state. It moves from ModeBootstrap to
// ModeSteady on the first Cipher call and never back.
type Mode int

const (
	ModeBootstrap Mode = iota
	ModeSteady
)

func (m Mode) String() string {
	if m == ModeSteady {
		return "steady"
	}
	return "bootstrap"
}

// nextBullet produces the trailer for message. In steady mode it rotates the
// code of the first resolvable symbol of message and persists the cipher
// table. Callers must hold s.mu.
func (s *Service) nextBullet(message string) (Bullet, error) {
	if s.mode == ModeBootstrap {
		s.mode = ModeSteady
		s.log.Debugf("Rotation protocol entering steady mode")
		return s.placeholder(), nil
	}

	slot, ok := s.lib.FirstSlot(message)
	if !ok || slot >= len(s.cipherTable) {
		s.log.Debugf("No rotation target in message, emitting placeholder bullet")
		return s.placeholder(), nil
	}

	code, err := s.probe()
	if err != nil {
		return Bullet{}, err
	}

	s.cipherTable[slot] = code
	if err := s.store.Save(keystore.Cipher, s.cipherTable); err != nil {
		return Bullet{}, fmt.Errorf("persisting rotated cipher table: %w", err)
	}

	s.log.Debugf("Rotated slot %d", slot)
	return newBullet(Rotation{Slot: slot, Code: code}, s.gen.Sample(FillerLen)), nil
}

// probe draws codes until one is absent from the in-memory cipher table. The
// search is unbounded unless maxProbes is positive.
func (s *Service) probe() (string, error) {
	for attempt := 1; ; attempt++ {
		code := s.gen.Code()
		if !s.cipherTable.Contains(code) {
			return code, nil
		}
		if s.maxProbes > 0 && attempt >= s.maxProbes {
			return "", fmt.Errorf("%w: %d attempts", kerrors.ErrDuplicateCodeExhaustion, attempt)
		}
	}
}

// placeholder returns a bullet of the real length whose prefix is not numeric.
func (s *Service) placeholder() Bullet {
	n := BulletLen(s.width)
	for {
		raw := s.gen.Stream(n)
		if !allDigits(raw[:SlotDigits]) {
			return newPlaceholder(raw)
		}
	}
}
