// Package keystore persists the three key tables crypter works with.
//
// # Files
//
// Each table is a flat concatenation of fixed-width codes with no
// delimiters; a code's position is its library slot:
//
//	key_all           master table, stored reversed
//	key_for_cipher    table used to encode
//	key_for_uncipher  table used to decode
//	bugs              one unresolvable symbol per line
//
// # Failure Handling
//
// Load never panics. A missing or unreadable file yields an empty table
// and an error wrapping ErrKeyFileUnreadable; the failure is also logged.
//
// Save writes to a temporary file in the same directory and renames it
// over the target so a concurrent reader never sees a partial table. The
// layout on disk is unchanged by this.
package keystore
