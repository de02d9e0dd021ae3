package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/crypter/internal/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	paths := setupTestEnvironment(t)

	out, err := runCLI(t, paths, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Key tables created")

	for _, name := range []string{"key_all", "key_for_cipher", "key_for_uncipher"} {
		assert.FileExists(t, filepath.Join(paths.DataDir, name))
	}
}

func TestCipherUncipherCommands(t *testing.T) {
	paths := setupTestEnvironment(t)

	_, err := runCLI(t, paths, "init")
	require.NoError(t, err)

	out, err := runCLI(t, paths, "cipher", "hello", "world")
	require.NoError(t, err)
	ciphertext := lastLine(out)
	assert.NotContains(t, ciphertext, "hello")

	out, err = runCLI(t, paths, "uncipher", "--", ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "hello world", lastLine(out))
}

func TestUncipherMalformed(t *testing.T) {
	paths := setupTestEnvironment(t)

	_, err := runCLI(t, paths, "init")
	require.NoError(t, err)

	out, err := runCLI(t, paths, "uncipher", "tooshort")
	assert.True(t, errors.Is(err, ErrReported))
	assert.Contains(t, out, "Not a crypter ciphertext")
}

func TestCipherWithoutTables(t *testing.T) {
	paths := setupTestEnvironment(t)
	writeConfig(t, paths, "[keys]\nrebuild_on_start = false\n")

	out, err := runCLI(t, paths, "cipher", "hello")
	assert.True(t, errors.Is(err, ErrReported))
	assert.Contains(t, out, "crypter init")
}

func TestInvalidConfigFile(t *testing.T) {
	paths := setupTestEnvironment(t)
	writeConfig(t, paths, "[keys]\ndifficulty = 1\n")

	_, err := runCLI(t, paths, "status")
	assert.Error(t, err)

	// config init --force must still be able to replace it.
	out, err := runCLI(t, paths, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Config written")

	_, err = runCLI(t, paths, "status")
	assert.NoError(t, err)
}

func TestStatusAndDoctorCommands(t *testing.T) {
	paths := setupTestEnvironment(t)

	out, err := runCLI(t, paths, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "missing")

	out, err = runCLI(t, paths, "doctor")
	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 2, exit.Code)
	assert.Contains(t, out, "crypter init")

	_, err = runCLI(t, paths, "init")
	require.NoError(t, err)

	out, err = runCLI(t, paths, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "master")
	assert.Contains(t, out, "159 codes")

	out, err = runCLI(t, paths, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "Health checks completed")
}

func TestApplyAndSyncCommands(t *testing.T) {
	paths := setupTestEnvironment(t)

	_, err := runCLI(t, paths, "init")
	require.NoError(t, err)

	out, err := runCLI(t, paths, "cipher", "hello")
	require.NoError(t, err)

	out, err = runCLI(t, paths, "apply", "--", lastLine(out))
	require.NoError(t, err)
	assert.Contains(t, out, "Placeholder bullet")

	out, err = runCLI(t, paths, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "already in step")
}

func TestChatCommand(t *testing.T) {
	paths := setupTestEnvironment(t)

	RootCmd.SetIn(strings.NewReader("hi there\nhow are you\nexit\nignored\n"))
	out, err := runCLI(t, paths, "chat")
	require.NoError(t, err)

	assert.Contains(t, out, "uncipher: hi there")
	assert.Contains(t, out, "uncipher: how are you")
	assert.NotContains(t, out, "ignored")
	assert.Contains(t, out, "slot ")
}

func TestFilesCommands(t *testing.T) {
	paths := setupTestEnvironment(t)
	work := t.TempDir()
	source := filepath.Join(work, "notes.txt")
	require.NoError(t, os.WriteFile(source, []byte("line one\nline two\n"), 0600))

	out, err := runCLI(t, paths, "files", "cipher", "--dry-run", source)
	require.NoError(t, err)
	assert.Contains(t, out, "[dry-run]")
	assert.NoFileExists(t, source+".crypt")

	_, err = runCLI(t, paths, "files", "cipher", source)
	require.NoError(t, err)
	require.FileExists(t, source+".crypt")
	require.NoError(t, os.Remove(source))

	_, err = runCLI(t, paths, "files", "uncipher", filepath.Join(work, "*.crypt"))
	require.NoError(t, err)

	got, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(got))
}

func TestLogCommand(t *testing.T) {
	paths := setupTestEnvironment(t)

	out, err := runCLI(t, paths, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "No audit log found")

	_, err = runCLI(t, paths, "init")
	require.NoError(t, err)
	_, err = runCLI(t, paths, "cipher", "hello")
	require.NoError(t, err)

	out, err = runCLI(t, paths, "log", "--op", "cipher", "--json")
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "cipher", entries[0]["op"])
	assert.Equal(t, "testuser", entries[0]["user"])

	_, err = runCLI(t, paths, "log", "--since", "not-a-date")
	assert.True(t, errors.Is(err, ErrReported))
}

func TestConfigCommands(t *testing.T) {
	paths := setupTestEnvironment(t)

	out, err := runCLI(t, paths, "config", "init", "--seed", "shared", "--difficulty", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "crypter init")

	cfg, err := configs.LoadConfigFrom(paths.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "shared", cfg.Keys.Seed)
	assert.Equal(t, 20, cfg.Keys.Difficulty)
	assert.Equal(t, paths.DataDir, cfg.Keys.DataDir)

	_, err = runCLI(t, paths, "config", "init")
	assert.True(t, errors.Is(err, ErrReported))

	out, err = runCLI(t, paths, "config", "show", "--json")
	require.NoError(t, err)
	var shown configs.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, 20, shown.Keys.Difficulty)

	out, err = runCLI(t, paths, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "difficulty = 20")
}

func TestConfigInitRejectsInvalidDifficulty(t *testing.T) {
	paths := setupTestEnvironment(t)

	out, err := runCLI(t, paths, "config", "init", "--difficulty", "1")
	assert.True(t, errors.Is(err, ErrReported))
	assert.Contains(t, out, "difficulty")
	assert.NoFileExists(t, paths.ConfigPath)
}

func TestDoctorJSON(t *testing.T) {
	paths := setupTestEnvironment(t)

	_, err := runCLI(t, paths, "init")
	require.NoError(t, err)

	out, err := runCLI(t, paths, "doctor", "--json")
	require.NoError(t, err)

	var result struct {
		Summary struct {
			Passed int `json:"passed"`
			Errors int `json:"errors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Zero(t, result.Summary.Errors)
	assert.Positive(t, result.Summary.Passed)
}
