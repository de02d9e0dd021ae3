package workflows

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CryptSuffix marks files written by CipherFiles.
const CryptSuffix = ".crypt"

// resolveFiles expands paths, directories and doublestar globs relative to
// baseDir. forCipher selects plain files, otherwise only .crypt files are
// returned. Anything inside skipDir (the data directory) is ignored.
func resolveFiles(patterns []string, baseDir, skipDir string, forCipher bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir, forCipher)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if seen[f] || isWithin(f, skipDir) {
				continue
			}
			seen[f] = true
			files = append(files, f)
		}
	}

	// Both sides must walk files in the same order for bullets to line up,
	// so .crypt files sort by the name they decode to.
	sort.Slice(files, func(i, j int) bool {
		return strings.TrimSuffix(files[i], CryptSuffix) < strings.TrimSuffix(files[j], CryptSuffix)
	})
	return files, nil
}

func resolvePattern(pattern, baseDir string, forCipher bool) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern, forCipher)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(pattern, absPattern, forCipher)
	}

	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", pattern)
	}
	if !wanted(absPattern, forCipher) {
		if forCipher {
			return nil, fmt.Errorf("file is already ciphered: %s", pattern)
		}
		return nil, fmt.Errorf("file is not a %s file: %s", CryptSuffix, pattern)
	}

	return []string{absPattern}, nil
}

func expandGlob(pattern, absPattern string, forCipher bool) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if wanted(m, forCipher) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func findFilesInDir(dir string, forCipher bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if wanted(path, forCipher) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func wanted(path string, forCipher bool) bool {
	return strings.HasSuffix(path, CryptSuffix) != forCipher
}

func isWithin(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
