package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default ragcli data directory name (relative to home).
	DefaultDataDir = ".ragcli"
	// DBFile is the filename of the local state SQLite database.
	DBFile = "ragcli.db"
	// ConfigFile is the filename of the optional client configuration file.
	ConfigFile = "config.yaml"

	// DefaultServerURL is the RAG backend endpoint used when none is
	// configured.
	DefaultServerURL = "http://localhost:8081"
)

// DBPath returns the full path to the local state database.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// ConfigPath returns the full path to the client configuration file.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFile)
}
