package crypter

import (
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
	"github.com/PolarWolf314/crypter/internal/keystore"
)

// Uncipher decodes a ciphertext produced by Cipher.
//
// A real bullet's rotation is applied to a working copy of the uncipher table
// and reported as Pending, but the body is decoded with the uncipher table
// freshly loaded from disk. A placeholder bullet selects the master table.
func (s *Service) Uncipher(ciphertext string) UncipherResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, raw, err := SplitCiphertext(ciphertext, s.width)
	if err != nil {
		return aborted(Bullet{}, err)
	}
	bullet, err := ParseBullet(raw, s.width)
	if err != nil {
		return aborted(Bullet{}, err)
	}

	var active keystore.Table
	var pending *Rotation

	if bullet.Placeholder {
		active, err = s.store.Load(keystore.All)
	} else {
		working, loadErr := s.store.Load(keystore.Uncipher)
		rot := bullet.Rotation
		if rot.Slot >= len(working) {
			if loadErr == nil {
				loadErr = fmt.Errorf("%w: slot %d, uncipher table holds %d codes", kerrors.ErrMalformedBullet, rot.Slot, len(working))
			}
			return aborted(bullet, loadErr)
		}
		working[rot.Slot] = rot.Code
		pending = &rot

		active, err = s.store.Load(keystore.Uncipher)
	}
	if err != nil {
		s.log.Debugf("Decoding with unreadable table: %v", err)
	}

	text, err := s.decode(body, active)
	if err != nil {
		res := aborted(bullet, err)
		res.Pending = pending
		return res
	}

	return UncipherResult{
		Text:    text,
		Outcome: OutcomeOK,
		Bullet:  bullet,
		Pending: pending,
	}
}

func (s *Service) decode(body []rune, table keystore.Table) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(body); i += s.width {
		chunk := string(body[i:min(i+s.width, len(body))])

		slot := table.IndexOf(chunk)
		if slot < 0 {
			return "", fmt.Errorf("%w: chunk %d %q", kerrors.ErrChunkNotFound, i/s.width, chunk)
		}
		symbol, err := s.lib.SymbolAt(slot)
		if err != nil {
			return "", err
		}
		sb.WriteRune(symbol)
	}
	return sb.String(), nil
}

func aborted(b Bullet, err error) UncipherResult {
	if err == nil {
		err = errors.New("uncipher aborted")
	}
	return UncipherResult{
		Outcome: OutcomeAborted,
		Bullet:  b,
		Err:     err,
	}
}
