package storage

import (
	"os"
	"path/filepath"
)

const appName = ".satchel"

// Data file names, one per record kind. The projects file is read-only
// from this package's perspective.
const (
	workspacesFile   = "workspaces.ndjson"
	foldersFile      = "folders.ndjson"
	requestsFile     = "requests.ndjson"
	environmentsFile = "environments.ndjson"
	projectsFile     = "projects.ndjson"
)

// DefaultDataDir returns the default data directory for Satchel
// Platform-specific paths:
//   - macOS/Linux: ~/.satchel
//   - Windows: %USERPROFILE%\.satchel
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appName), nil
}
