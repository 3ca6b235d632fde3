package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeanhaley32/lara/internal/constants"
)

// PathResolver handles config file resolution with priority rules.
type PathResolver struct {
	configDir string
}

// NewPathResolver creates a new PathResolver rooted at the user config directory.
func NewPathResolver() (*PathResolver, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return &PathResolver{configDir: dir}, nil
}

// GetGlobalConfigPath returns the global config file path.
// Returns: $XDG_CONFIG_HOME/lara/config.yaml
func (p *PathResolver) GetGlobalConfigPath() string {
	return filepath.Join(p.configDir, constants.GlobalConfigDir, constants.GlobalConfigFile)
}

// GetLocalConfigPath returns the project config path for a given directory.
// Returns: {dir}/.lara.yaml
func (p *PathResolver) GetLocalConfigPath(dir string) string {
	return filepath.Join(dir, constants.LocalConfigFile)
}

// ResolveConfigPath applies the config resolution priority rules.
// Priority:
// 1. Explicit path (if provided) - use exactly what user specifies
// 2. Local config ({projectDir}/.lara.yaml) - if exists, use it
// 3. Global config ($XDG_CONFIG_HOME/lara/config.yaml) - if exists, use it
//
// Returns the resolved path and whether it exists. The path is empty when
// nothing explicit was given and neither file exists.
func (p *PathResolver) ResolveConfigPath(explicitPath, projectDir string) (path string, exists bool) {
	// Priority 1: Explicit path
	if explicitPath != "" {
		_, err := os.Stat(explicitPath)
		return explicitPath, err == nil
	}

	// Priority 2: Local config
	localPath := p.GetLocalConfigPath(projectDir)
	if _, err := os.Stat(localPath); err == nil {
		return localPath, true
	}

	// Priority 3: Global config
	globalPath := p.GetGlobalConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		return globalPath, true
	}

	return "", false
}

// ConfigNotFoundError is returned when an explicitly requested config file is missing.
type ConfigNotFoundError struct {
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

// ResolveConfigPathStrict is like ResolveConfigPath but fails when an explicit path does not exist.
// Falling back to defaults is not an error.
func (p *PathResolver) ResolveConfigPathStrict(explicitPath, projectDir string) (string, error) {
	path, exists := p.ResolveConfigPath(explicitPath, projectDir)
	if explicitPath != "" && !exists {
		return "", &ConfigNotFoundError{Path: explicitPath}
	}
	return path, nil
}
