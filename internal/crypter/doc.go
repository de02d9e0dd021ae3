// Package crypter implements the substitution cipher with a rotating key
// table.
//
// # Tables
//
// Every library symbol maps to one fixed-width code. Three tables are
// persisted by the keystore package: the master table written at rebuild
// time, the cipher table used to encode, and the uncipher table used to
// decode.
//
// # Bullets
//
// Every ciphertext ends with a bullet of BulletLen(width) characters:
//
//	ddd + code + 17 filler   real bullet: slot ddd now encodes as code
//	non-numeric prefix       placeholder: no rotation, decode with master
//
// The first Cipher call of a Service emits a placeholder. Every later call
// rotates the slot of the first known symbol of the message, persists the
// cipher table, and describes the rotation in its bullet. The body of a
// message is always encoded with the table as it was before that message's
// rotation.
//
// # Keeping Tables In Sync
//
// Uncipher does not persist the rotation it reads. A receiver that wants
// to decode the next message calls ApplyBullet after each successful
// Uncipher, or Sync when it shares the data directory with the sender.
//
// # Results
//
// Cipher and Uncipher never return bare errors. Their results carry an
// Outcome (ok, lossy, aborted) and, when aborted, an Err that matches the
// sentinels in the errors package.
package crypter
