package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "bloombuddy"
	dataDirName    = "plasma-bloombuddy"
	dataFileName   = "data.json"
	dbFileName     = "bloombuddy.db"
	configFileName = "config.yaml"
)

// DataDir follows the XDG data directory, the location the desktop widget
// has always used.
func DataDir() (string, error) {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

func DefaultDataPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dataFileName), nil
}

func DefaultDBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, configFileName), nil
}
