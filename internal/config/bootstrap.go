package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// EnsureUserConfig copies the shipped default config into the data dir on
// first run and returns the user config path. If the shipped default is
// missing (stripped-down install), a generated default is written instead.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if werr := SaveAtomic(userPath, Default(dataDir)); werr != nil {
				return "", werr
			}
			return userPath, nil
		}
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}

// Default returns a runnable config pointing at the data dir.
func Default(dataDir string) Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.App.DataDir = dataDir
	cfg.Catalog.CSVPath = filepath.Join(dataDir, "item-attributes.csv")
	cfg.Catalog.PerCategory = 4
	cfg.Enrich.ReqPerSec = 2
	cfg.Enrich.Burst = 1
	cfg.Enrich.MaxConcurrent = 4
	cfg.Enrich.TimeoutSeconds = 12
	return cfg
}
