package keystore

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Table is an ordered list of codes indexed by library slot.
type Table []string

// Chunk splits raw into consecutive codes of width characters. A trailing
// partial chunk is kept as is.
func Chunk(raw string, width int) Table {
	if raw == "" || width <= 0 {
		return Table{}
	}

	runes := []rune(raw)
	t := make(Table, 0, (len(runes)+width-1)/width)
	for i := 0; i < len(runes); i += width {
		end := min(i+width, len(runes))
		t = append(t, string(runes[i:end]))
	}
	return t
}

// String returns the flat, delimiter-free concatenation of all codes.
func (t Table) String() string {
	return strings.Join(t, "")
}

func (t Table) Clone() Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// IndexOf returns the slot holding code, or -1.
func (t Table) IndexOf(code string) int {
	for i, c := range t {
		if c == code {
			return i
		}
	}
	return -1
}

func (t Table) Contains(code string) bool {
	return t.IndexOf(code) >= 0
}

// Duplicates returns groups of slots sharing the same code, in slot order.
func (t Table) Duplicates() [][]int {
	bySlot := make(map[string][]int, len(t))
	for i, c := range t {
		bySlot[c] = append(bySlot[c], i)
	}

	var groups [][]int
	for i, c := range t {
		slots := bySlot[c]
		if len(slots) > 1 && slots[0] == i {
			groups = append(groups, slots)
		}
	}
	return groups
}

// Malformed returns the slots whose code is not exactly width characters long.
func (t Table) Malformed(width int) []int {
	var slots []int
	for i, c := range t {
		if len([]rune(c)) != width {
			slots = append(slots, i)
		}
	}
	return slots
}

// Diff returns the slots where t and other hold different codes. Slots present
// in only one of the tables count as different.
func (t Table) Diff(other Table) []int {
	var slots []int
	for i := 0; i < max(len(t), len(other)); i++ {
		if i >= len(t) || i >= len(other) || t[i] != other[i] {
			slots = append(slots, i)
		}
	}
	return slots
}

// Fingerprint returns a short BLAKE2b digest of the flat table.
func (t Table) Fingerprint() string {
	if len(t) == 0 {
		return ""
	}
	sum := blake2b.Sum256([]byte(t.String()))
	return hex.EncodeToString(sum[:8])
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
