package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the tickline home directory.
const HomeEnv = "TICKLINE_HOME"

// GetTicklineHome returns the tickline home directory
// Priority order:
//  1. TICKLINE_HOME environment variable (if set)
//  2. .tickline under the current working directory
//
// The directory is created if it doesn't exist
func GetTicklineHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create tickline home directory: %w", err)
		}
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	home := filepath.Join(cwd, ".tickline")
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create tickline home directory: %w", err)
	}
	return home, nil
}

// DefaultPath returns the config file path inside the tickline home.
func DefaultPath() (string, error) {
	home, err := GetTicklineHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}
