package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/crypter/internal/audit"
	"github.com/PolarWolf314/crypter/internal/crypter"
	kerrors "github.com/PolarWolf314/crypter/internal/errors"
)

// FilesOptions configures the files cipher and uncipher workflows.
type FilesOptions struct {
	// Patterns are paths, directories or doublestar globs.
	Patterns []string

	// BaseDir resolves relative patterns. Defaults to the working directory.
	BaseDir string

	// DryRun lists the files that would be processed without touching them.
	DryRun bool
}

// FileResult describes one processed file.
type FileResult struct {
	Source string
	Output string

	// Lines is the number of messages, one per line.
	Lines int

	// Lossy counts lines that dropped unknown symbols.
	Lossy int
}

// FilesResult contains the outcome of a files operation.
type FilesResult struct {
	Files  []FileResult
	DryRun bool
}

// Outputs returns the written file paths.
func (r *FilesResult) Outputs() []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.Output
	}
	return out
}

// CipherFiles ciphers every line of the matched files as its own message and
// writes the ciphertexts, one per line, to <file>.crypt. Files are processed
// in sorted order so UncipherFiles can replay the rotations.
//
// Returns ErrNoFilesFound if nothing matches.
func CipherFiles(ctx context.Context, env Env, opts FilesOptions) (*FilesResult, error) {
	return processFiles(ctx, env, opts, true)
}

// UncipherFiles reverses CipherFiles, applying every bullet as it goes so the
// uncipher table follows the sender's rotations.
//
// Returns ErrNoFilesFound if no .crypt file matches.
func UncipherFiles(ctx context.Context, env Env, opts FilesOptions) (*FilesResult, error) {
	return processFiles(ctx, env, opts, false)
}

func processFiles(ctx context.Context, env Env, opts FilesOptions, forCipher bool) (*FilesResult, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	files, err := resolveFiles(opts.Patterns, baseDir, env.DataDir(), forCipher)
	if err != nil {
		return nil, fmt.Errorf("resolving file patterns: %w", err)
	}
	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	result := &FilesResult{DryRun: opts.DryRun}
	for _, f := range files {
		result.Files = append(result.Files, FileResult{Source: f, Output: outputPath(f, forCipher)})
	}
	if opts.DryRun {
		return result, nil
	}

	err = withLock(ctx, env, func() error {
		svc, err := openService(env, env.config().Keys.RebuildOnStart)
		if err != nil {
			return err
		}
		if err := requireTables(svc); err != nil {
			return err
		}

		for i := range result.Files {
			if err := ctx.Err(); err != nil {
				return err
			}
			fr := &result.Files[i]
			if forCipher {
				err = cipherFile(svc, fr)
			} else {
				err = uncipherFile(svc, fr)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", fr.Source, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	op := "files-uncipher"
	if forCipher {
		op = "files-cipher"
	}
	entry := audit.LogWithUser(op)
	entry.Files = result.Outputs()
	for _, f := range result.Files {
		entry.Symbols += f.Lines
		entry.Unknown += f.Lossy
	}
	entry.Outcome = crypter.OutcomeOK.String()
	if entry.Unknown > 0 {
		entry.Outcome = crypter.OutcomeLossy.String()
	}
	record(env, entry)

	return result, nil
}

func outputPath(source string, forCipher bool) string {
	if forCipher {
		return source + CryptSuffix
	}
	return strings.TrimSuffix(source, CryptSuffix)
}

func cipherFile(svc *crypter.Service, fr *FileResult) error {
	data, err := os.ReadFile(fr.Source)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		res := svc.Cipher(line)
		if res.Outcome == crypter.OutcomeAborted {
			return fmt.Errorf("line %d: %w", i+1, res.Err)
		}
		if res.Outcome == crypter.OutcomeLossy {
			fr.Lossy++
		}
		out[i] = res.Text
	}
	fr.Lines = len(lines)

	return os.WriteFile(fr.Output, []byte(strings.Join(out, "\n")), 0600)
}

func uncipherFile(svc *crypter.Service, fr *FileResult) error {
	data, err := os.ReadFile(fr.Source)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		res := svc.Uncipher(line)
		if res.Outcome == crypter.OutcomeAborted {
			return fmt.Errorf("line %d: %w", i+1, res.Err)
		}
		if _, _, err := svc.ApplyBullet(line); err != nil {
			return fmt.Errorf("line %d: applying rotation: %w", i+1, err)
		}
		out[i] = res.Text
	}
	fr.Lines = len(lines)

	return os.WriteFile(fr.Output, []byte(strings.Join(out, "\n")), 0600)
}
