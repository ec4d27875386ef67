package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultHomeName is the directory holding config, logs, reports and history.
const DefaultHomeName = ".dirtally"

// HomeEnv overrides the home directory location.
const HomeEnv = "DIRTALLY_HOME"

// GetHome returns the dirtally home directory.
// Priority order:
//  1. DIRTALLY_HOME environment variable (if set)
//  2. .dirtally in the current working directory
//
// The directory is not created here; writers create what they need.
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, DefaultHomeName), nil
}
