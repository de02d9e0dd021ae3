package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/crypter/internal/configs"

	"github.com/fatih/color"
)

// testPaths holds the temporary locations one CLI test runs against.
type testPaths struct {
	DataDir    string
	ConfigPath string
}

// setupTestEnvironment points the settings at temp directories and resets
// command state before and after the test.
func setupTestEnvironment(t *testing.T) testPaths {
	t.Helper()
	tempDir := t.TempDir()
	originalNoColor := color.NoColor
	color.NoColor = true

	paths := testPaths{
		DataDir:    filepath.Join(tempDir, "data"),
		ConfigPath: filepath.Join(tempDir, "config", "config.toml"),
	}

	originalSettings := configs.CrypterSettings
	configs.CrypterSettings = &configs.Settings{
		ConfigPath: paths.ConfigPath,
		DataDir:    paths.DataDir,
		Username:   "testuser",
	}
	ResetGlobalState()

	t.Cleanup(func() {
		configs.CrypterSettings = originalSettings
		color.NoColor = originalNoColor
		ResetGlobalState()
		RootCmd.SetIn(nil)
		RootCmd.SetArgs(nil)
	})
	return paths
}

// writeConfig writes a config file for the test.
func writeConfig(t *testing.T, paths testPaths, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(paths.ConfigPath), 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(paths.ConfigPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

// runCLI executes the root command with args plus the test's data and
// config paths, returning everything written to stdout and stderr.
func runCLI(t *testing.T, paths testPaths, args ...string) (string, error) {
	t.Helper()
	full := append([]string{"--data-dir", paths.DataDir, "--config", paths.ConfigPath}, args...)
	RootCmd.SetArgs(full)
	out, err := captureOutput(RootCmd.Execute)
	ResetGlobalState()
	return out, err
}

// lastLine returns the last non-empty line of out.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	collect := func(r io.Reader) {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outputChan <- buf.String()
	}
	go collect(stdoutReader)
	go collect(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, err
}
