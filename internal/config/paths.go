package config

import (
	"os"
	"path/filepath"
)

// Paths holds all the file system paths used by the application
type Paths struct {
	Home       string // ~/.scrollster
	ConfigPath string // ~/.scrollster/config.json
	LogsDir    string // ~/.scrollster/logs
}

// DefaultPaths returns the paths rooted in the user's home directory.
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return PathsAt(filepath.Join(home, ".scrollster")), nil
}

// PathsAt returns the paths rooted at dir.
func PathsAt(dir string) *Paths {
	return &Paths{
		Home:       dir,
		ConfigPath: filepath.Join(dir, "config.json"),
		LogsDir:    filepath.Join(dir, "logs"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
