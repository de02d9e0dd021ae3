package keystore

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
	logger "github.com/PolarWolf314/crypter/internal/logging"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDir = "/data"

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return New(fs, testDir, 3, logger.Logger{}), fs
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	table := Table{"abc", "def", "ghi"}

	for _, target := range Targets {
		require.NoError(t, store.Save(target, table))

		loaded, err := store.Load(target)
		require.NoError(t, err)
		assert.Equal(t, table, loaded, "target %s", target)
	}
}

func TestMasterTableIsReversedOnDisk(t *testing.T) {
	store, fs := newTestStore(t)
	require.NoError(t, store.Save(All, Table{"abc", "def"}))

	raw, err := afero.ReadFile(fs, store.Path(All))
	require.NoError(t, err)
	assert.Equal(t, "fedcba", string(raw))

	require.NoError(t, store.Save(Cipher, Table{"abc", "def"}))
	raw, err = afero.ReadFile(fs, store.Path(Cipher))
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(raw))
}

func TestLoadMissingFileReturnsEmptyTable(t *testing.T) {
	var errBuf bytes.Buffer
	fs := afero.NewMemMapFs()
	store := New(fs, testDir, 3, logger.Logger{Verbose: true, Err: &errBuf})

	table, err := store.Load(Uncipher)
	assert.Empty(t, table)
	assert.NotNil(t, table)
	assert.True(t, errors.Is(err, kerrors.ErrKeyFileUnreadable))
	assert.Contains(t, errBuf.String(), "key_for_uncipher")
}

func TestSaveLeavesNoTemporaryFiles(t *testing.T) {
	store, fs := newTestStore(t)
	require.NoError(t, store.Save(Cipher, Table{"abc"}))
	require.NoError(t, store.Save(Cipher, Table{"xyz"}))

	entries, err := afero.ReadDir(fs, testDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "key_for_cipher", entries[0].Name())
}

func TestCopy(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Save(Cipher, Table{"abc", "def"}))
	require.NoError(t, store.Copy(Cipher, Uncipher))

	loaded, err := store.Load(Uncipher)
	require.NoError(t, err)
	assert.Equal(t, Table{"abc", "def"}, loaded)
}

func TestCopyMissingSource(t *testing.T) {
	store, _ := newTestStore(t)
	err := store.Copy(Cipher, Uncipher)
	assert.ErrorIs(t, err, kerrors.ErrKeyFileUnreadable)
	assert.False(t, store.Exists(Uncipher))
}

func TestBugsAppend(t *testing.T) {
	store, _ := newTestStore(t)

	bugs, err := store.Bugs()
	require.NoError(t, err)
	assert.Empty(t, bugs)

	require.NoError(t, store.AppendBug('$'))
	require.NoError(t, store.AppendBug('€'))

	bugs, err = store.Bugs()
	require.NoError(t, err)
	assert.Equal(t, []string{"$", "€"}, bugs)
}

func TestExists(t *testing.T) {
	store, _ := newTestStore(t)
	assert.False(t, store.Exists(Cipher))
	require.NoError(t, store.Save(Cipher, Table{"abc"}))
	assert.True(t, store.Exists(Cipher))
}

func TestTargetNames(t *testing.T) {
	assert.Equal(t, "key_all", All.FileName())
	assert.Equal(t, "key_for_cipher", Cipher.FileName())
	assert.Equal(t, "key_for_uncipher", Uncipher.FileName())
	assert.True(t, strings.HasPrefix(Target(7).FileName(), "key_unknown"))
}
