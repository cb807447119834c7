package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootMarker marks a project directory whose rob home is <dir>/.rob.
const RootMarker = ".rob-root"

// GetRobHome returns the rob home directory
// Priority order:
//  1. ROB_HOME environment variable (if set)
//  2. .rob inside the nearest ancestor holding a .rob-root marker
//  3. .rob in the current working directory (fallback)
//
// The directory is created if it doesn't exist
func GetRobHome() (string, error) {
	if home := os.Getenv("ROB_HOME"); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create rob home directory: %w", err)
		}
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	base := cwd
	if root, ok := findProjectRoot(cwd); ok {
		base = root
	}

	home := filepath.Join(base, ".rob")
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create rob home directory: %w", err)
	}
	return home, nil
}

// findProjectRoot walks up from dir looking for the root marker.
func findProjectRoot(dir string) (string, bool) {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, RootMarker)); err == nil {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}
