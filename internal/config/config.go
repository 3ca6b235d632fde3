package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeanhaley32/lara/internal/constants"
	"github.com/jeanhaley32/lara/internal/project"
)

// PortMapping describes one host port published by the compose project.
type PortMapping struct {
	Name          string `yaml:"name"`
	EnvKey        string `yaml:"env"`
	Default       int    `yaml:"default"`
	ContainerPort int    `yaml:"container"`
}

// Config holds the settings a dispatcher is built from. It is read-only once loaded.
type Config struct {
	ComposeFile string        `yaml:"compose_file"`
	Docker      string        `yaml:"docker"`
	User        string        `yaml:"user"`
	Service     string        `yaml:"service"`
	Services    []string      `yaml:"services"`
	ServePort   int           `yaml:"serve_port"`
	EnvFile     string        `yaml:"env_file"`
	EnvTemplate string        `yaml:"env_template"`
	Ports       []PortMapping `yaml:"ports"`

	// ProjectDir is the directory relative paths resolve against.
	ProjectDir string `yaml:"-"`

	// Source is the config file that was applied, empty when only defaults were used.
	Source string `yaml:"-"`
}

// Overrides carries values set explicitly on the command line.
type Overrides struct {
	ConfigPath  string
	ComposeFile string
	User        string
	Service     string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ComposeFile: constants.DefaultComposeFile,
		Docker:      constants.DefaultDockerBinary,
		User:        constants.DefaultUser,
		Service:     constants.DefaultService,
		Services:    append([]string(nil), constants.DefaultServices...),
		ServePort:   constants.DefaultServePort,
		EnvFile:     constants.EnvFile,
		EnvTemplate: constants.EnvTemplateFile,
		Ports: []PortMapping{
			{Name: "app", EnvKey: "APP_PORT", Default: 80, ContainerPort: 80},
			{Name: "mysql", EnvKey: "FORWARD_DB_PORT", Default: 3306, ContainerPort: 3306},
			{Name: "redis", EnvKey: "FORWARD_REDIS_PORT", Default: 6379, ContainerPort: 6379},
			{Name: "vite", EnvKey: "VITE_PORT", Default: 5173, ContainerPort: 5173},
		},
	}
}

// Load builds the configuration for a command run from cwd.
// Precedence, lowest first: defaults, config file, environment, overrides.
func Load(cwd string, o Overrides, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()

	// The root is found before the config file is read, so a local config file
	// marks it too. That config may itself rename the compose file.
	composeFile := firstNonEmpty(o.ComposeFile, getenv(constants.EnvComposeFile), cfg.ComposeFile)
	root, err := project.NewLocator().Root(cwd, composeFile, constants.LocalConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to locate project root: %w", err)
	}
	cfg.ProjectDir = root

	resolver, err := NewPathResolver()
	if err != nil {
		return nil, err
	}
	path, err := resolver.ResolveConfigPathStrict(o.ConfigPath, root)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ComposeFile = firstNonEmpty(o.ComposeFile, getenv(constants.EnvComposeFile), cfg.ComposeFile)
	cfg.User = firstNonEmpty(o.User, getenv(constants.EnvUser), cfg.User)
	cfg.Service = firstNonEmpty(o.Service, getenv(constants.EnvService), cfg.Service)
	cfg.Docker = firstNonEmpty(getenv(constants.EnvDocker), cfg.Docker)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFile merges the YAML file at path over cfg. Keys missing from the file keep their value.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.Source = path
	return nil
}

// Validate checks that every value a command template needs is present.
func (c *Config) Validate() error {
	required := map[string]string{
		"compose_file": c.ComposeFile,
		"docker":       c.Docker,
		"user":         c.User,
		"service":      c.Service,
		"env_file":     c.EnvFile,
		"env_template": c.EnvTemplate,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	if c.ServePort < 1 || c.ServePort > 65535 {
		return fmt.Errorf("serve_port must be between 1 and 65535, got %d", c.ServePort)
	}
	// These are substituted as single template words
	if !isWord(c.User) {
		return fmt.Errorf("invalid user %q", c.User)
	}
	if !isWord(c.Service) {
		return fmt.Errorf("invalid service name %q", c.Service)
	}
	for _, svc := range c.Services {
		if !isWord(svc) {
			return fmt.Errorf("invalid service name %q", svc)
		}
	}
	return nil
}

func isWord(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t\n\r\"'\\")
}

// Path resolves name against the project directory unless it is already absolute.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) || c.ProjectDir == "" {
		return name
	}
	return filepath.Join(c.ProjectDir, name)
}

// ComposePath returns the resolved compose file path.
func (c *Config) ComposePath() string {
	return c.Path(c.ComposeFile)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
