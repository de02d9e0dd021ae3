package workflows

import (
	"context"
	"os"
	"testing"

	"github.com/PolarWolf314/crypter/internal/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCheck(t *testing.T, res *DoctorResult, name string) CheckResult {
	t.Helper()
	for _, c := range res.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found", name)
	return CheckResult{}
}

func TestDoctorBeforeInit(t *testing.T) {
	env := newTestEnv(t, false)

	res, err := Doctor(context.Background(), env, DoctorOptions{})
	require.NoError(t, err)

	assert.Equal(t, CheckError, findCheck(t, res, "Data directory").Status)
	assert.Equal(t, CheckError, findCheck(t, res, "Table master").Status)
	assert.Positive(t, res.Summary.Errors)
	assert.Contains(t, res.Suggestions, "Run 'crypter init' to create the key tables")
}

func TestDoctorHealthy(t *testing.T) {
	env := newTestEnv(t, false)
	mustInit(t, env)

	res, err := Doctor(context.Background(), env, DoctorOptions{})
	require.NoError(t, err)

	assert.Zero(t, res.Summary.Errors)
	assert.Zero(t, res.Summary.Warnings)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, CheckPass, findCheck(t, res, "Configuration").Status)
}

func TestDoctorWarnsAboutDriftAndBugs(t *testing.T) {
	env := newTestEnv(t, false)
	mustInit(t, env)

	sender := openSender(t, env)
	sender.Cipher("warm up")
	sender.Cipher("drift Ш")

	res, err := Doctor(context.Background(), env, DoctorOptions{})
	require.NoError(t, err)

	assert.Equal(t, CheckWarning, findCheck(t, res, "Table drift").Status)
	assert.Equal(t, CheckWarning, findCheck(t, res, "Unknown symbols").Status)
	assert.Zero(t, res.Summary.Errors)
}

func TestDoctorWarnsAboutOpenDataDir(t *testing.T) {
	env := newTestEnv(t, false)
	mustInit(t, env)
	require.NoError(t, os.Chmod(env.DataDir(), 0755))

	res, err := Doctor(context.Background(), env, DoctorOptions{})
	require.NoError(t, err)
	assert.Equal(t, CheckWarning, findCheck(t, res, "Data directory").Status)
}

func TestDoctorInvalidConfigFile(t *testing.T) {
	env := newTestEnv(t, false)
	mustInit(t, env)

	require.NoError(t, os.WriteFile(configsPath(), []byte("[keys]\ndifficulty = 1\n"), 0600))

	res, err := Doctor(context.Background(), env, DoctorOptions{})
	require.NoError(t, err)
	assert.Equal(t, CheckError, findCheck(t, res, "Configuration").Status)
}

func TestCheckStatusString(t *testing.T) {
	assert.Equal(t, "pass", CheckPass.String())
	assert.Equal(t, "warning", CheckWarning.String())
	assert.Equal(t, "error", CheckError.String())
	assert.Equal(t, "unknown", CheckStatus(42).String())
}

func configsPath() string {
	return configs.CrypterSettings.ConfigPath
}
