package crypter

import (
	"fmt"
	"strconv"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
)

const (
	// SlotDigits is the width of the zero-padded slot index in a real bullet.
	SlotDigits = 3

	// FillerLen is the number of random characters closing a real bullet.
	FillerLen = 17
)

// BulletLen returns the trailer length for codes of the given width.
func BulletLen(width int) int {
	return SlotDigits + width + FillerLen
}

// Rotation is a single slot update carried by a real bullet.
type Rotation struct {
	Slot int
	Code string
}

// Bullet is the fixed-length trailer closing every ciphertext. A real bullet
// carries a Rotation; a placeholder carries nothing and its first SlotDigits
// characters are never all digits.
type Bullet struct {
	Placeholder bool
	Rotation    Rotation
	raw         string
}

func newBullet(r Rotation, filler string) Bullet {
	return Bullet{
		Rotation: r,
		raw:      fmt.Sprintf("%0*d", SlotDigits, r.Slot) + r.Code + filler,
	}
}

func newPlaceholder(raw string) Bullet {
	return Bullet{Placeholder: true, raw: raw}
}

// String returns the bullet as it appears at the end of a ciphertext.
func (b Bullet) String() string {
	return b.raw
}

// ParseBullet decodes a trailer of exactly BulletLen(width) characters.
func ParseBullet(s string, width int) (Bullet, error) {
	runes := []rune(s)
	if len(runes) != BulletLen(width) {
		return Bullet{}, fmt.Errorf("%w: expected %d characters, got %d", kerrors.ErrMalformedBullet, BulletLen(width), len(runes))
	}

	prefix := string(runes[:SlotDigits])
	if !allDigits(prefix) {
		return newPlaceholder(s), nil
	}

	slot, err := strconv.Atoi(prefix)
	if err != nil {
		return Bullet{}, fmt.Errorf("%w: slot %q: %v", kerrors.ErrMalformedBullet, prefix, err)
	}

	return Bullet{
		Rotation: Rotation{
			Slot: slot,
			Code: string(runes[SlotDigits : SlotDigits+width]),
		},
		raw: s,
	}, nil
}

// SplitCiphertext separates the body from the trailing bullet.
func SplitCiphertext(ciphertext string, width int) (body []rune, bullet string, err error) {
	runes := []rune(ciphertext)
	n := BulletLen(width)
	if len(runes) < n {
		return nil, "", fmt.Errorf("%w: %d characters is shorter than a bullet (%d)", kerrors.ErrMalformedCiphertext, len(runes), n)
	}
	return runes[:len(runes)-n], string(runes[len(runes)-n:]), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
