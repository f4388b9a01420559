package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.auditor/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".auditor", "logs")
	}
	return filepath.Join(home, ".auditor", "logs")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "auditor.log")
}

// FindLogFile returns explicit if it exists, otherwise the default log path
// if it exists.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandHome(explicit)
		if _, err := os.Stat(explicit); err == nil {
			return explicit, nil
		}
		return "", fmt.Errorf("log file not found: %s", explicit)
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("no log file found. Run an audit with --debug first.\nExpected at: %s", path)
}
