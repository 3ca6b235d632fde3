package compose

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Exit codes used when the process did not report one itself.
const (
	exitGeneric  = 1
	exitTimeout  = 124
	exitNotFound = 127
)

// ProcessError reports a compose invocation that did not exit cleanly.
// The exit code is passed through as-is.
type ProcessError struct {
	Args []string
	Code int
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s exited with code %d", strings.Join(e.Args, " "), e.Code)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// processError converts an exec error into a *ProcessError. It returns nil for a nil err.
func processError(ctx context.Context, args []string, err error) error {
	if err == nil {
		return nil
	}
	code := exitGeneric
	var exitErr *exec.ExitError
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		code = exitTimeout
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal
			code = exitGeneric
		}
	case errors.Is(err, exec.ErrNotFound):
		code = exitNotFound
	}
	return &ProcessError{Args: args, Code: code, Err: err}
}
