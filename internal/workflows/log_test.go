package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/crypter/internal/audit"
	kerrors "github.com/PolarWolf314/crypter/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAuditLog(t *testing.T, env Env, lines string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(env.DataDir(), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(env.DataDir(), audit.FileName), []byte(lines), 0600))
}

const sampleLog = `{"ts":"2024-01-10T10:00:00.000000Z","user":"alice","session":"aaaa-1","op":"init","fingerprint":"0011"}
{"ts":"2024-01-15T10:00:00.000000Z","user":"alice","session":"aaaa-1","op":"cipher","placeholder":true,"symbols":5,"outcome":"ok"}
{"ts":"2024-01-16T10:00:00.000000Z","user":"bob","session":"bbbb-2","op":"cipher","slot":7,"symbols":3,"unknown":1,"outcome":"lossy"}
{"ts":"2024-01-20T10:00:00.000000Z","user":"bob","session":"bbbb-2","op":"apply","slot":7}
`

func TestLogNoFile(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := Log(context.Background(), env, LogOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNoFilesFound)
}

func TestLogFilters(t *testing.T) {
	env := newTestEnv(t, false)
	writeAuditLog(t, env, sampleLog)

	tests := []struct {
		name string
		opts LogOptions
		ops  []string
	}{
		{"All", LogOptions{}, []string{"init", "cipher", "cipher", "apply"}},
		{"ByUser", LogOptions{User: "BOB"}, []string{"cipher", "apply"}},
		{"BySession", LogOptions{Session: "aaaa"}, []string{"init", "cipher"}},
		{"ByOperations", LogOptions{Operations: "apply, init"}, []string{"init", "apply"}},
		{"Since", LogOptions{Since: "2024-01-15"}, []string{"cipher", "cipher", "apply"}},
		{"Until", LogOptions{Until: "2024-01-15"}, []string{"init", "cipher"}},
		{"Limit", LogOptions{Limit: 2}, []string{"cipher", "apply"}},
		{"ReverseLimit", LogOptions{Limit: 2, Reverse: true}, []string{"apply", "cipher"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Log(context.Background(), env, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, 4, res.TotalEntriesBeforeFilter)

			var ops []string
			for _, e := range res.Entries {
				ops = append(ops, e.Operation)
			}
			assert.Equal(t, tt.ops, ops)
		})
	}
}

func TestLogInvalidDate(t *testing.T) {
	env := newTestEnv(t, false)
	writeAuditLog(t, env, sampleLog)

	_, err := Log(context.Background(), env, LogOptions{Since: "15/01/2024"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)

	_, err = Log(context.Background(), env, LogOptions{Until: "yesterday"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)
}

func TestFormatDetails(t *testing.T) {
	entries, err := audit.ParseEntries([]byte(sampleLog))
	require.NoError(t, err)

	assert.Equal(t, "fingerprint 0011", FormatDetails(entries[0]))
	assert.Equal(t, "placeholder, 5 symbols", FormatDetails(entries[1]))
	assert.Equal(t, "slot 007, 3 symbols, 1 unknown, lossy", FormatDetails(entries[2]))
	assert.Equal(t, "slot 007", FormatDetails(entries[3]))

	files := audit.Entry{Files: []string{"a", "b", "c", "d"}}
	assert.Equal(t, "4 files", FormatDetails(files))
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "2024-01-15 10:00:00", FormatDateTime("2024-01-15T10:00:00.000000Z"))
	assert.Equal(t, "garbage", FormatDateTime("garbage"))
}
