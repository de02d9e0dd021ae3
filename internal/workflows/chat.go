package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/crypter/internal/audit"
	"github.com/PolarWolf314/crypter/internal/crypter"

	"github.com/gofrs/flock"
)

// ChatTurn is one message sent through a chat session.
type ChatTurn struct {
	Cipher   crypter.CipherResult
	Uncipher crypter.UncipherResult
}

// Chat plays both ends of a conversation against one service: each message
// is ciphered, unciphered and its bullet applied, so the tables rotate the
// way they would between two synchronized peers. The data directory stays
// locked until Close.
type Chat struct {
	env  Env
	svc  *crypter.Service
	lock *flock.Flock

	turns int
}

// OpenChat locks the data directory and opens the service for a session.
func OpenChat(ctx context.Context, env Env) (*Chat, error) {
	lock, err := acquireLock(ctx, env)
	if err != nil {
		return nil, err
	}

	svc, err := openService(env, env.config().Keys.RebuildOnStart)
	if err == nil {
		err = requireTables(svc)
	}
	if err != nil {
		lock.Close()
		return nil, err
	}

	return &Chat{env: env, svc: svc, lock: lock}, nil
}

// Mode returns the session's rotation mode.
func (c *Chat) Mode() crypter.Mode {
	return c.svc.Mode()
}

// Exchange sends one message through the session.
func (c *Chat) Exchange(message string) (ChatTurn, error) {
	turn := ChatTurn{Cipher: c.svc.Cipher(message)}
	if turn.Cipher.Outcome == crypter.OutcomeAborted {
		return turn, fmt.Errorf("cipher aborted: %w", turn.Cipher.Err)
	}

	turn.Uncipher = c.svc.Uncipher(turn.Cipher.Text)
	if turn.Uncipher.Outcome == crypter.OutcomeAborted {
		return turn, fmt.Errorf("uncipher aborted: %w", turn.Uncipher.Err)
	}

	if _, _, err := c.svc.ApplyBullet(turn.Cipher.Text); err != nil {
		return turn, fmt.Errorf("applying rotation: %w", err)
	}

	c.turns++
	return turn, nil
}

// Close records the session and releases the data directory lock.
func (c *Chat) Close() error {
	entry := audit.LogWithUser("chat")
	entry.Symbols = c.turns
	record(c.env, entry)

	return c.lock.Close()
}
