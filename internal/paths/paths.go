// Package paths locates spyglass's on-disk files per the XDG base directory
// spec, with sane fallbacks when the environment is bare.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the directory holding spyglass configuration. Priority:
// 1) XDG_CONFIG_HOME/spyglass (if set)
// 2) ~/.config/spyglass
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "spyglass"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "spyglass"), nil
}

// DataDir returns the directory holding spyglass state such as action logs.
// Priority:
// 1) XDG_DATA_HOME/spyglass (if set)
// 2) ~/.local/share/spyglass
// 3) /tmp/spyglass-<uid> (created)
func DataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "spyglass"), nil
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "spyglass"), nil
	}

	tmpDir := fmt.Sprintf("/tmp/spyglass-%d", os.Getuid())
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}
	return tmpDir, nil
}

// ConfigFile returns the main configuration file path.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ActionLogFile returns the default action log path.
func ActionLogFile() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "actions.log"), nil
}
