package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Compose only accepts lowercase letters, digits, dashes and underscores.
var unsafeCharRegex = regexp.MustCompile(`[^a-z0-9_-]+`)

// Maximum length for derived project names
const maxNameLength = 63

// DefaultLocator implements Locator using the filesystem only.
type DefaultLocator struct{}

// NewLocator creates a new project locator.
func NewLocator() *DefaultLocator {
	return &DefaultLocator{}
}

func (d *DefaultLocator) Root(path string, markers ...string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	// An absolute compose file pins the project to its directory
	for _, marker := range markers {
		if filepath.IsAbs(marker) {
			return filepath.Dir(marker), nil
		}
	}

	dir := absPath
	for {
		for _, marker := range markers {
			if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && !info.IsDir() {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return absPath, nil
		}
		dir = parent
	}
}

func (d *DefaultLocator) Name(dir string) string {
	return sanitizeName(filepath.Base(dir))
}

// sanitizeName converts a directory name to a compose project name.
// Examples:
//   - My App -> myapp
//   - _billing.api -> billingapi
func sanitizeName(name string) string {
	name = strings.ToLower(name)

	// Remove any characters compose rejects
	name = unsafeCharRegex.ReplaceAllString(name, "")

	// Project names must start with a letter or digit
	name = strings.TrimLeft(name, "_-")

	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}

	if name == "" {
		name = "default"
	}

	return name
}
