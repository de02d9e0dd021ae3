package crypter

// Outcome tells a caller how far an operation got.
type Outcome int

const (
	// OutcomeOK means every symbol was processed.
	OutcomeOK Outcome = iota
	// OutcomeLossy means the operation completed but dropped unknown symbols.
	OutcomeLossy
	// OutcomeAborted means no usable output was produced.
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeLossy:
		return "lossy"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// CipherResult is the output of Service.Cipher.
type CipherResult struct {
	Text    string
	Outcome Outcome

	// Unknown holds the input symbols that were dropped, in input order.
	Unknown []rune

	// Bullet is the trailer appended to Text.
	Bullet Bullet

	// Err is set when Outcome is OutcomeAborted.
	Err error
}

// String returns the ciphertext, empty when the call was aborted.
func (r CipherResult) String() string {
	return r.Text
}

// UncipherResult is the output of Service.Uncipher.
type UncipherResult struct {
	Text    string
	Outcome Outcome
	Bullet  Bullet

	// Pending is the rotation carried by a real bullet. Uncipher applies it to
	// a working copy only; ApplyBullet persists it.
	Pending *Rotation

	Err error
}

func (r UncipherResult) String() string {
	return r.Text
}
