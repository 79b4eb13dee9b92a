// Package paths decides where pipeboard keeps its configuration and its
// database. Every location goes through a precedence chain so a flag or an
// environment variable can relocate an installation without touching code.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the leaf directory appended to every platform base.
const appDirName = "pipeboard"

// DefaultDataDirName is the CWD-relative database directory used when
// nothing overrides the data location.
const DefaultDataDirName = ".pipeboard-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PIPEBOARD_CONFIG_DIR"
	EnvDataDir   = "PIPEBOARD_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// platformAppDir resolves the per-platform base directory and appends the
// application leaf. On Linux the XDG variable wins; otherwise the path is
// built from the home directory and homeParts. macOS and Windows share one
// base via os.UserConfigDir (~/Library/Application Support and %APPDATA%).
func platformAppDir(xdgEnv string, homeParts ...string) (string, error) {
	if runtime.GOOS != "linux" {
		base, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, appDirName), nil
	}

	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeParts...)
	parts = append(parts, appDirName)
	return filepath.Join(parts...), nil
}

// DefaultConfigDir returns the platform default for configuration:
// $XDG_CONFIG_HOME/pipeboard on Linux (falling back to ~/.config/pipeboard),
// the shared application-support directory elsewhere.
func DefaultConfigDir() (string, error) {
	return platformAppDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform default for data:
// $XDG_DATA_HOME/pipeboard on Linux (falling back to
// ~/.local/share/pipeboard), the shared application-support directory
// elsewhere.
func DefaultDataDir() (string, error) {
	return platformAppDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir picks the configuration directory: the flag when given,
// else PIPEBOARD_CONFIG_DIR, else the platform default. Relative inputs come
// back absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the data directory: the flag when given, else the
// config.yaml value, else PIPEBOARD_DATA_DIR, else $(CWD)/.pipeboard-db so
// an unconfigured checkout stays self-contained. Relative inputs come back
// absolute.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	for _, candidate := range []string{flag, configYAMLValue, os.Getenv(EnvDataDir)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
