package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/mpwgo/mpw/engine"
	"github.com/mpwgo/mpw/types"
)

// cliConfig holds the environment-variable defaults read once at startup,
// the way the teacher's sibling generator builds its static configuration
// table once at package load rather than re-reading the environment on
// every call.
type cliConfig struct {
	fullName  string
	algorithm engine.AlgorithmVersion
	format    types.Format
}

func loadConfig() cliConfig {
	cfg := cliConfig{
		algorithm: engine.DefaultAlgorithm,
		format:    types.FormatJSON,
	}
	if v := os.Getenv("MP_FULLNAME"); v != "" {
		cfg.fullName = v
	}
	if v := os.Getenv("MP_ALGORITHM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			if parsed, err := engine.ParseAlgorithmVersion(n); err == nil {
				cfg.algorithm = parsed
			}
		}
	}
	if v := os.Getenv("MP_FORMAT"); v != "" {
		if f, err := types.ParseFormat(v); err == nil {
			cfg.format = f
		}
	}
	return cfg
}

// profileDir returns $HOME/.mpw.d, creating it (mode 0700) if absent.
func profileDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".mpw.d")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// profilePath returns the on-disk path for fullName under the requested
// format: "<fullName>.mpsites" for flat, "<fullName>.mpsites.json" for json.
func profilePath(dir, fullName string, format types.Format) string {
	name := fullName + ".mpsites"
	if format == types.FormatJSON {
		name += ".json"
	}
	return filepath.Join(dir, name)
}
