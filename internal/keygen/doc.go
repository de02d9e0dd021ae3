// Package keygen produces the fixed-length codes stored in key tables.
//
// Codes are built by shuffling a reduced population of lower-case letters
// and digits and concatenating shuffles until the requested width is
// reached. With a seed the generator is deterministic: two processes
// using the same seed rebuild identical tables and draw identical
// rotation codes. This is a substitution table generator, not a source of
// cryptographic keys.
package keygen
