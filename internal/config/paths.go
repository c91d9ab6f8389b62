package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvConfigDir overrides the platform config directory.
const EnvConfigDir = "HUFFCRYPT_CONFIG_DIR"

// candidates are tried in order inside ConfigRoot.
var candidates = []string{"config.yaml", "config.yml", "config.jsonc", "config.json"}

// DefaultPath returns the first existing config file in ConfigRoot, or
// config.yaml there when none exists.
func DefaultPath() string {
	root := ConfigRoot()
	for _, name := range candidates {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(root, candidates[0])
}

// ConfigRoot returns the root config directory
func ConfigRoot() string {
	// Check environment variable first
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}

	// Use platform-specific defaults
	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", "huffcrypt")
		}
	case "linux":
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, "huffcrypt")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "huffcrypt")
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "huffcrypt")
		}
	}

	// Fallback to temp directory
	return filepath.Join(os.TempDir(), "huffcrypt")
}
