package state

import (
	"os"
	"runtime"

	"github.com/jeanhaley32/lara/internal/config"
	"github.com/jeanhaley32/lara/internal/project"
)

// ProjectState describes the project files as seen from the host.
type ProjectState struct {
	ProjectDir     string
	ProjectName    string
	ComposeFile    string
	ComposeExists  bool
	EnvFile        string
	EnvExists      bool
	TemplateFile   string
	TemplateExists bool
	ConfigSource   string
	Service        string
	User           string
	Platform       string
}

// Detector checks the state of the project without contacting the container runtime.
type Detector struct {
	cfg     *config.Config
	locator project.Locator
}

// NewDetector creates a new state detector.
func NewDetector(cfg *config.Config) *Detector {
	return &Detector{
		cfg:     cfg,
		locator: project.NewLocator(),
	}
}

// Detect checks all host-side aspects of the project.
func (d *Detector) Detect() *ProjectState {
	s := &ProjectState{
		ProjectDir:   d.cfg.ProjectDir,
		ProjectName:  d.locator.Name(d.cfg.ProjectDir),
		ComposeFile:  d.cfg.ComposePath(),
		EnvFile:      d.cfg.Path(d.cfg.EnvFile),
		TemplateFile: d.cfg.Path(d.cfg.EnvTemplate),
		ConfigSource: d.cfg.Source,
		Service:      d.cfg.Service,
		User:         d.cfg.User,
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
	}

	s.ComposeExists = fileExists(s.ComposeFile)
	s.EnvExists = fileExists(s.EnvFile)
	s.TemplateExists = fileExists(s.TemplateFile)

	return s
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
