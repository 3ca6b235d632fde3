package compose

import (
	"context"
	"fmt"
	"io"

	"github.com/kballard/go-shellquote"
)

// DryRun implements Backend by printing each compose command instead of running it.
// Lines are quoted so they can be pasted into a shell.
type DryRun struct {
	Binary      string
	ComposeFile string
	Out         io.Writer
}

func (d *DryRun) line(args []string) string {
	all := append([]string{d.Binary, "compose", "-f", d.ComposeFile}, args...)
	return "+ " + shellquote.Join(all...)
}

func (d *DryRun) Run(ctx context.Context, args []string) error {
	_, err := fmt.Fprintln(d.Out, d.line(args))
	return err
}

func (d *DryRun) Start(ctx context.Context, args []string) error {
	_, err := fmt.Fprintln(d.Out, d.line(args)+" &")
	return err
}
