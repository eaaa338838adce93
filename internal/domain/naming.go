package domain

import "path/filepath"

// AppName is used for directory and file names.
const AppName = "worklog"

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// GlobalConfigPath returns the global config file path under configHome.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// DefaultStateDir returns the state directory under stateHome.
func DefaultStateDir(stateHome string) string {
	return filepath.Join(stateHome, AppName)
}

// StatePath returns the path to the local state file.
func StatePath(stateDir string) string {
	return filepath.Join(stateDir, "state.json")
}

// LogPath returns the path to the log file.
func LogPath(stateDir string) string {
	return filepath.Join(stateDir, "logs", "worklog.log")
}
