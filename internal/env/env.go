// Package env provides environment variable loading from .env files.
// This allows node settings (datadir, rpc credentials) to live in a
// gitignored .env file and be referenced from the YAML config as ${VAR}.
package env

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultFile is the .env file read from the current working directory.
const DefaultFile = ".env"

// Load reads KEY=VALUE pairs from path and sets them in the process
// environment. It is called before config loading so that ${VAR}
// references in the YAML resolve.
//
// Behavior:
//   - If the file doesn't exist, Load returns nil (system env vars still apply)
//   - Variables set in the file override system environment variables
//   - Malformed files are reported as an error
func Load(path string) error {
	if path == "" {
		path = DefaultFile
	}

	if err := godotenv.Overload(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
