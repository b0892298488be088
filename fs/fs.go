// Package fs provides filesystem-backed helpers.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultCacheDir returns the default cache directory for convbench.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/convbench,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "convbench")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "convbench")
	}
	return filepath.Join(home, ".cache", "convbench")
}
