// Package paths resolves where clausebook keeps its configuration and its
// catalog data.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName names the per-user directory under the platform config and
// data roots.
const appDirName = "clausebook"

// Environment variables that override the default directories.
const (
	EnvConfigDir = "CLAUSEBOOK_CONFIG_DIR"
	EnvDataDir   = "CLAUSEBOOK_DATA_DIR"
)

// platform holds the OS lookups used below; tests replace them.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/clausebook (fallback ~/.config/clausebook)
// Others:  os.UserConfigDir()/clausebook
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the per-user data directory.
//
// Linux:   $XDG_DATA_HOME/clausebook (fallback ~/.local/share/clausebook)
// Others:  os.UserConfigDir()/clausebook
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, homeRel string) (string, error) {
	if platform.goos != "linux" {
		dir, err := platform.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if root := os.Getenv(env); root != "" {
		return filepath.Join(root, appDirName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appDirName), nil
}

// ResolveConfigDir picks the configuration directory: the flag value, then
// CLAUSEBOOK_CONFIG_DIR, then DefaultConfigDir. The result is absolute.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir picks the data directory: the flag value, then
// CLAUSEBOOK_DATA_DIR, then data_dir from config.yaml, then DefaultDataDir.
// The result is absolute.
func ResolveDataDir(flag, configured string) (string, error) {
	return firstAbs(DefaultDataDir, flag, os.Getenv(EnvDataDir), configured)
}

// ResolveRelative returns p unchanged when it is empty or absolute, and
// joined onto base otherwise. Paths in config.yaml are relative to the
// config directory.
func ResolveRelative(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
