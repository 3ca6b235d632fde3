package project

// Locator finds the compose project a command runs against.
type Locator interface {
	// Root returns the nearest directory at or above path containing any of markers.
	// An absolute marker pins the root to its directory. When no ancestor
	// contains a marker, path itself is returned.
	Root(path string, markers ...string) (string, error)

	// Name returns the compose project name for the project rooted at dir.
	Name(dir string) string
}
