package configs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	kerrors "github.com/PolarWolf314/crypter/internal/errors"
)

// SaveTOML encodes data as TOML and writes it with owner-only permissions.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}

	return os.WriteFile(filePath, buf.Bytes(), 0600)
}

// LoadTOML loads a TOML file into a struct. Keys that do not map onto a
// field are reported as ErrInvalidConfig, which catches typos in hand-edited
// files.
func LoadTOML(filePath string, data interface{}) error {
	meta, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", kerrors.ErrInvalidConfig, strings.Join(keys, ", "))
	}
	return nil
}
