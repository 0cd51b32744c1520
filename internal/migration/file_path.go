package migration

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

const modulePath = "github.com/elskow/gatekeeper"

// getMigrationsDir returns the absolute path to the migrations directory
func getMigrationsDir() (string, error) {
	dir, err := findModuleRoot()
	if err != nil {
		return "", fmt.Errorf("failed to find project root: %w", err)
	}

	return filepath.Join(dir, "migrations"), nil
}

// findModuleRoot walks upward until it finds this module's go.mod.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		gomod := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(gomod); err == nil {
			content, err := os.ReadFile(gomod)
			if err != nil {
				return "", err
			}

			if modfile.ModulePath(content) == modulePath {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
