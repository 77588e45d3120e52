// Package paths resolves configuration and workspace directory locations.
// The workspace is where snapshots are written; the config directory holds
// config.yaml.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative default directory name for the workspace.
const DefaultWorkspaceDirName = ".depot-workspace"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "DEPOT_CONFIG_DIR"
	EnvWorkspace = "DEPOT_WORKSPACE"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/depot (fallback ~/.config/depot)
// macOS:   ~/Library/Application Support/depot
// Windows: %APPDATA%/depot
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "depot"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "depot"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "depot"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > DEPOT_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveWorkspace returns the workspace directory following the precedence
// chain: flag > config.yaml value > DEPOT_WORKSPACE env > $(CWD)/.depot-workspace.
//
// The CWD-relative default keeps a depot self-contained next to the fleet it
// tracks, which suits the single-station deployments this tool targets.
func ResolveWorkspace(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvWorkspace); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultWorkspaceDirName), nil
}
