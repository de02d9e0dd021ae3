package library

import (
	"fmt"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
)

// MaxSlots is the number of slots a three-digit bullet index can address.
const MaxSlots = 1000

// defaultSymbols is the built-in alphabet. Its order defines the slots used by
// every key table on disk, so it must never be reordered.
var defaultSymbols = []rune(
	"абвгдеёжзийклмнопрстуфхцчшщъыьэюя" +
		"abcdefghijklmnopqrstuvwxyz" +
		"АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧЩЪЫЬЭЮЯ" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		"!\"#%&'()*+,-./:;<=>?@[\\]^_`{|}~ ",
)

// Library is an immutable ordered alphabet. A symbol's position is its slot.
type Library struct {
	symbols []rune
	slots   map[rune]int
}

// Default returns the built-in library.
func Default() *Library {
	lib, err := New(defaultSymbols)
	if err != nil {
		panic(err)
	}
	return lib
}

// New builds a library from an ordered symbol list.
func New(symbols []rune) (*Library, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("library must contain at least one symbol")
	}
	if len(symbols) > MaxSlots {
		return nil, fmt.Errorf("library has %d symbols, at most %d are addressable", len(symbols), MaxSlots)
	}

	lib := &Library{
		symbols: make([]rune, len(symbols)),
		slots:   make(map[rune]int, len(symbols)),
	}
	copy(lib.symbols, symbols)

	for i, r := range lib.symbols {
		if prev, ok := lib.slots[r]; ok {
			return nil, fmt.Errorf("symbol %q appears at slots %d and %d", r, prev, i)
		}
		lib.slots[r] = i
	}

	return lib, nil
}

// Len returns the number of slots.
func (l *Library) Len() int {
	return len(l.symbols)
}

// SlotOf returns the slot of r, or ErrUnknownSymbol.
func (l *Library) SlotOf(r rune) (int, error) {
	slot, ok := l.slots[r]
	if !ok {
		return -1, fmt.Errorf("%w: %q", kerrors.ErrUnknownSymbol, r)
	}
	return slot, nil
}

// SymbolAt returns the symbol stored at slot.
func (l *Library) SymbolAt(slot int) (rune, error) {
	if slot < 0 || slot >= len(l.symbols) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", kerrors.ErrSlotOutOfRange, slot, len(l.symbols))
	}
	return l.symbols[slot], nil
}

func (l *Library) Contains(r rune) bool {
	_, ok := l.slots[r]
	return ok
}

// FirstSlot returns the slot of the first symbol of s that the library knows.
func (l *Library) FirstSlot(s string) (int, bool) {
	for _, r := range s {
		if slot, ok := l.slots[r]; ok {
			return slot, true
		}
	}
	return -1, false
}

// Symbols returns a copy of the alphabet in slot order.
func (l *Library) Symbols() []rune {
	out := make([]rune, len(l.symbols))
	copy(out, l.symbols)
	return out
}
