package errors

import "errors"

// Symbol errors indicate input that the library cannot represent.
var (
	// ErrUnknownSymbol indicates a symbol is absent from the library.
	ErrUnknownSymbol = errors.New("symbol is not in the library")

	// ErrSlotOutOfRange indicates a slot index outside the library or a key table.
	ErrSlotOutOfRange = errors.New("slot is out of range")
)

// Key table errors indicate issues with the persisted key tables.
var (
	// ErrKeyFileUnreadable indicates a key table file could not be loaded.
	ErrKeyFileUnreadable = errors.New("key table file is unreadable")

	// ErrTablesNotInitialized indicates the key tables have not been built yet.
	ErrTablesNotInitialized = errors.New("key tables have not been initialized")

	// ErrDuplicateCodeExhaustion indicates the rotation probe gave up looking for an unused code.
	ErrDuplicateCodeExhaustion = errors.New("no unused code found within the probe limit")

	// ErrLocked indicates another process holds the key table lock.
	ErrLocked = errors.New("key tables are locked by another process")
)

// Decode errors indicate ciphertext that cannot be turned back into plaintext.
var (
	// ErrChunkNotFound indicates a ciphertext chunk has no match in the active table.
	ErrChunkNotFound = errors.New("ciphertext chunk not found in key table")

	// ErrMalformedBullet indicates the trailer does not have the expected shape.
	ErrMalformedBullet = errors.New("malformed bullet")

	// ErrMalformedCiphertext indicates the ciphertext is too short to carry a bullet.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
)

// Configuration and file errors.
var (
	// ErrInvalidConfig indicates the configuration file holds unusable values.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrInvalidDateFormat indicates a date filter could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
