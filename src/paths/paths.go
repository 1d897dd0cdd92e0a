// Package paths resolves the directories confsync owns on the local machine:
// the config directory holding config.toml and the data directory holding the
// backup repository and the diagnostics log.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Environment overrides. When set they take precedence over the platform
// defaults, which keeps tests and unusual setups away from the real home
// directory.
const (
	EnvConfigDir = "CONFSYNC_CONFIG_DIR"
	EnvDataDir   = "CONFSYNC_DATA_DIR"
)

const appDir = "confsync"

// Provider holds the resolved directories. Commands derive every path they
// touch from one Provider so the whole layout can be swapped at once.
type Provider struct {
	ConfigDir string
	DataDir   string
}

// Default resolves the per-user directories for the current platform,
// honouring the CONFSYNC_CONFIG_DIR and CONFSYNC_DATA_DIR overrides.
func Default() (Provider, error) {
	var p Provider
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.ConfigDir = dir
	} else {
		base, err := os.UserConfigDir()
		if err != nil {
			return Provider{}, fmt.Errorf("paths: resolve config dir: %w", err)
		}
		p.ConfigDir = filepath.Join(base, appDir)
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.DataDir = dir
	} else {
		base, err := userDataDir()
		if err != nil {
			return Provider{}, fmt.Errorf("paths: resolve data dir: %w", err)
		}
		p.DataDir = filepath.Join(base, appDir)
	}
	return p, nil
}

// ConfigFile is the path of the TOML registry document.
func (p Provider) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.toml")
}

// RepoRoot is the directory that holds one repository subtree per profile.
func (p Provider) RepoRoot() string {
	return filepath.Join(p.DataDir, "backups")
}

// LogFile is the destination of the diagnostics log.
func (p Provider) LogFile() string {
	return filepath.Join(p.DataDir, "confsync.log")
}

// userDataDir mirrors os.UserConfigDir for the data scope: XDG_DATA_HOME on
// unix-likes, Application Support on macOS, LocalAppData on Windows.
func userDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir := os.Getenv("LocalAppData")
		if dir == "" {
			return "", fmt.Errorf("%%LocalAppData%% is not defined")
		}
		return dir, nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}
