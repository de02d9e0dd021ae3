package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/crypter/internal/audit"
	"github.com/PolarWolf314/crypter/internal/configs"
	"github.com/PolarWolf314/crypter/internal/crypter"
	kerrors "github.com/PolarWolf314/crypter/internal/errors"
	logger "github.com/PolarWolf314/crypter/internal/logging"

	"github.com/gofrs/flock"
)

// LockFileName is the advisory lock taken in the data directory while a
// workflow touches the key tables.
const LockFileName = ".lock"

// LockTimeout bounds how long a workflow waits for another crypter process.
var LockTimeout = 5 * time.Second

// Env carries the loaded configuration and logger into every workflow.
type Env struct {
	Config *configs.Config
	Logger logger.Logger
}

func (e Env) config() *configs.Config {
	if e.Config == nil {
		return configs.DefaultConfig()
	}
	return e.Config
}

// DataDir returns the directory holding the key tables.
func (e Env) DataDir() string {
	return configs.CrypterSettings.DataDir
}

// openService opens the key tables in the data directory. rebuild overrides
// the configured rebuild_on_start for workflows that must not regenerate
// tables.
func openService(env Env, rebuild bool) (*crypter.Service, error) {
	cfg := env.config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	svc, err := crypter.Open(crypter.Options{
		Dir:              env.DataDir(),
		Seed:             cfg.Keys.Seed,
		Width:            cfg.Keys.Difficulty,
		RebuildOnStart:   rebuild,
		MaxProbeAttempts: cfg.Keys.MaxProbeAttempts,
		Logger:           env.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening key tables: %w", err)
	}
	return svc, nil
}

// requireTables fails with ErrTablesNotInitialized when any table file is
// missing.
func requireTables(svc *crypter.Service) error {
	if !svc.Status().Initialized() {
		return fmt.Errorf("%w: run `crypter init` first", kerrors.ErrTablesNotInitialized)
	}
	return nil
}

// acquireLock takes the data directory's advisory lock, waiting at most
// LockTimeout for another crypter process to release it.
func acquireLock(ctx context.Context, env Env) (*flock.Flock, error) {
	dir := env.DataDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()

	lockPath := filepath.Join(dir, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if !ok {
		if err == nil {
			err = lockCtx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrLocked, lockPath, err)
	}
	return lock, nil
}

// withLock runs fn while holding the data directory's advisory lock.
func withLock(ctx context.Context, env Env, fn func() error) error {
	lock, err := acquireLock(ctx, env)
	if err != nil {
		return err
	}
	defer lock.Close()

	return fn()
}

// record writes entry to the audit log unless auditing is disabled.
func record(env Env, entry audit.Entry) {
	if !env.config().Audit.Enabled {
		return
	}
	audit.Log(entry)
}
