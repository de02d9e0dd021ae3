package crypter

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
)

// Cipher encodes message with the active cipher table and appends one bullet.
// Symbols outside the library are written to the bug log and skipped, which
// makes the result lossy rather than failed.
func (s *Service) Cipher(message string) CipherResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	var unknown []rune

	for _, r := range message {
		slot, err := s.lib.SlotOf(r)
		if err != nil {
			unknown = append(unknown, r)
			if err := s.store.AppendBug(r); err != nil {
				s.log.Warnf("Failed to record unknown symbol %q: %v", r, err)
			}
			s.log.Infof("Unknown symbol %q skipped", r)
			continue
		}

		if slot >= len(s.cipherTable) {
			return CipherResult{
				Outcome: OutcomeAborted,
				Unknown: unknown,
				Err:     fmt.Errorf("%w: slot %d, cipher table holds %d codes", kerrors.ErrSlotOutOfRange, slot, len(s.cipherTable)),
			}
		}
		sb.WriteString(s.cipherTable[slot])
	}

	bullet, err := s.nextBullet(message)
	if err != nil {
		s.reloadCipher()
		return CipherResult{
			Outcome: OutcomeAborted,
			Unknown: unknown,
			Err:     err,
		}
	}
	sb.WriteString(bullet.String())

	s.reloadCipher()

	outcome := OutcomeOK
	if len(unknown) > 0 {
		outcome = OutcomeLossy
	}
	return CipherResult{
		Text:    sb.String(),
		Outcome: outcome,
		Unknown: unknown,
		Bullet:  bullet,
	}
}
