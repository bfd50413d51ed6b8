package env

import (
	"os"
	"path/filepath"
)

// (default: %USERPROFILE%/.simpleclaw-desktop on Windows, $HOME/.simpleclaw-desktop on Linux)
var KeeperDir string = GetKeeperDir()

/**
 * Get keeper directory path
 * @returns {string} Returns the per-user keeper directory
 */
func GetKeeperDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".simpleclaw-desktop")
}

// GetInstallDir returns the default installation directory holding the generated stack.
func GetInstallDir() string {
	return filepath.Join(KeeperDir, "openclaw")
}

// GetSocketPath returns the unix socket the keeper server listens on.
func GetSocketPath() string {
	return filepath.Join(KeeperDir, "run", "keeper.sock")
}

// Version is filled from build flags by the version command
var Version string = "dev"
