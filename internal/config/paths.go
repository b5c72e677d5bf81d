package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// SettingsFilename is the per-project config file searched for upward
const SettingsFilename = ".rclean.yaml"

// appName names the rclean directories under the user config and state roots
const appName = "rclean"

// FindConfigUpward searches from startDir up to the filesystem root for a
// regular file named filename. Directories with that name are ignored.
func FindConfigUpward(startDir, filename string) (string, bool) {
	current, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(current, filename)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			return "", false
		}
		current = parent
	}
}

// GlobalConfigFile returns the location of the global config file,
// whether or not it exists: $XDG_CONFIG_HOME/rclean/config.yaml
func GlobalConfigFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(dir, appName, "config.yaml"), nil
}

// GlobalConfigPath returns the global config file if it exists
func GlobalConfigPath() (string, bool) {
	path, err := GlobalConfigFile()
	if err != nil {
		return "", false
	}
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return path, true
	}
	return "", false
}

// DiscoverConfig finds the config file for startDir: first .rclean.yaml
// searching upward, then the global config file
func DiscoverConfig(startDir string) (string, bool) {
	if path, ok := FindConfigUpward(startDir, SettingsFilename); ok {
		return path, true
	}
	return GlobalConfigPath()
}

// LoadDiscovered loads the discovered config for startDir, or defaults when
// there is none. The returned path is empty when defaults were used.
func LoadDiscovered(startDir string) (*CleanConfig, string, error) {
	path, ok := DiscoverConfig(startDir)
	if !ok {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// GetStateHome returns the rclean state directory
// Priority order:
//  1. RCLEAN_HOME environment variable (if set)
//  2. $XDG_STATE_HOME/rclean
//  3. ~/.local/state/rclean
//
// The directory is created if it doesn't exist
func GetStateHome() (string, error) {
	home := os.Getenv("RCLEAN_HOME")
	if home == "" {
		base := os.Getenv("XDG_STATE_HOME")
		if base == "" {
			userHome, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("get home directory: %w", err)
			}
			base = filepath.Join(userHome, ".local", "state")
		}
		home = filepath.Join(base, appName)
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}
	return home, nil
}

// GetHistoryDBPath returns the path of the run history database
func GetHistoryDBPath() (string, error) {
	home, err := GetStateHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}

// GetLockPath returns the run lock file for a canonical working root.
// Roots are hashed so that any path maps to a flat file name.
func GetLockPath(root string) (string, error) {
	home, err := GetStateHome()
	if err != nil {
		return "", err
	}

	lockDir := filepath.Join(home, "locks")
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return "", fmt.Errorf("create lock directory: %w", err)
	}

	sum := sha256.Sum256([]byte(root))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock"), nil
}
