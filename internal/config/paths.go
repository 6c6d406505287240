package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigCandidates are the project config files tried in order.
var ProjectConfigCandidates = []string{".relnotes.yml", ".relnotes.yaml", ".relnotes.json"}

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/relnotes/config.yml
// - macOS: ~/Library/Application Support/relnotes/config.yml
// - Windows: %APPDATA%\relnotes\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relnotes", "config.yml"), nil
}

// findProjectConfig returns the first existing project config in the current
// directory, or "" when there is none.
func findProjectConfig() string {
	for _, candidate := range ProjectConfigCandidates {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}
