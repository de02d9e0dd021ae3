// Package library defines the fixed alphabet crypter can encode.
//
// The position of a symbol in the alphabet is its slot. Slots are the
// stable key shared by the master, cipher and uncipher key tables, so the
// built-in order is part of the on-disk format. The alphabet holds
// Cyrillic and Latin letters in both cases, digits, punctuation and the
// space character. Anything else is an unknown symbol.
package library
