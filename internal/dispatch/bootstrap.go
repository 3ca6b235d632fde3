package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// BootstrapResult is the outcome of a successful Bootstrap.
type BootstrapResult int

const (
	Created BootstrapResult = iota
	AlreadyExists
)

// Bootstrap copies template to target unless target already exists.
// An existing target is left untouched and reported as AlreadyExists.
func Bootstrap(template, target string) (BootstrapResult, error) {
	if _, err := os.Lstat(target); err == nil {
		return AlreadyExists, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("failed to check %s: %w", target, err)
	}

	src, err := os.Open(template)
	if err != nil {
		return 0, fmt.Errorf("failed to open template: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat template: %w", err)
	}

	// O_EXCL keeps a concurrent bootstrap from overwriting a file created since the check
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return AlreadyExists, nil
		}
		return 0, fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return 0, fmt.Errorf("failed to copy template: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return 0, fmt.Errorf("failed to write %s: %w", target, err)
	}
	return Created, nil
}

func runBootstrap(ctx context.Context, d *Dispatcher) error {
	template := d.cfg.Path(d.cfg.EnvTemplate)
	target := d.cfg.Path(d.cfg.EnvFile)

	res, err := Bootstrap(template, target)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	switch res {
	case Created:
		fmt.Fprintf(d.Out, "Created %s from %s\n", filepath.Base(target), filepath.Base(template))
	case AlreadyExists:
		fmt.Fprintf(d.Out, "%s already exists, skipping\n", filepath.Base(target))
	}
	return nil
}
