// Package paths resolves where archiwum keeps its files. Everything lives
// next to the executable unless ARCHIWUM_HOME points elsewhere.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// EnvHome overrides the base directory.
const EnvHome = "ARCHIWUM_HOME"

// BaseDir returns the application base directory, creating it if needed.
func BaseDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		dir, err := homedir.Expand(home)
		if err != nil {
			return "", fmt.Errorf("expanding %s=%q: %w", EnvHome, home, err)
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", dir, err)
		}
		return abs, Ensure(abs)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("finding the application directory: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	return dir, Ensure(dir)
}

// Ensure creates dir and its parents when missing.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// LogsDir is where the daily log files go.
func LogsDir(base string) string { return filepath.Join(base, "logs") }

// ConfigFile is the default config location.
func ConfigFile(base string) string { return filepath.Join(base, "config.yaml") }
