package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "fitnutrition"
	dbFileName     = "state.db"
	configFileName = "config.toml"
	logFileName    = "fitnutrition.log"
)

func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultDBPath() (string, error) {
	return inAppDir(dbFileName)
}

func DefaultConfigPath() (string, error) {
	return inAppDir(configFileName)
}

func DefaultLogPath() (string, error) {
	return inAppDir(logFileName)
}

func inAppDir(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
