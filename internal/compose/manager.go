package compose

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/jeanhaley32/lara/internal/constants"
)

// Manager implements Backend using the docker compose CLI.
type Manager struct {
	Binary      string
	ComposeFile string
	ProjectDir  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewManager creates a compose manager attached to the process's standard streams.
func NewManager(binary, composeFile, projectDir string) *Manager {
	if binary == "" {
		binary = constants.DefaultDockerBinary
	}
	return &Manager{
		Binary:      binary,
		ComposeFile: composeFile,
		ProjectDir:  projectDir,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Argv returns the full argument vector, binary excluded, for a compose subcommand.
func (m *Manager) Argv(args []string) []string {
	return append([]string{"compose", "-f", m.ComposeFile}, args...)
}

func (m *Manager) Run(ctx context.Context, args []string) error {
	argv := m.Argv(args)
	cmd := exec.CommandContext(ctx, m.Binary, argv...)
	cmd.Dir = m.ProjectDir
	cmd.Stdin = m.Stdin
	cmd.Stdout = m.Stdout
	cmd.Stderr = m.Stderr

	return processError(ctx, append([]string{m.Binary}, argv...), cmd.Run())
}

func (m *Manager) Start(ctx context.Context, args []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Not bound to ctx: cancelling the invoker must not kill a background server
	argv := m.Argv(args)
	cmd := exec.Command(m.Binary, argv...)
	cmd.Dir = m.ProjectDir
	cmd.Stdout = m.Stdout
	cmd.Stderr = m.Stderr
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return processError(ctx, append([]string{m.Binary}, argv...), err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release background process: %w", err)
	}
	return nil
}
