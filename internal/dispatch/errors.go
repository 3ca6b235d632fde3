package dispatch

import (
	"errors"
	"fmt"

	"github.com/jeanhaley32/lara/internal/constants"
)

// ErrUnknownCommand is matched by every *UnknownCommandError.
var ErrUnknownCommand = errors.New("unknown command")

// UnknownCommandError is returned when a name is not in the registry.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q\nRun '%s help' for a list of commands", e.Name, constants.AppName)
}

func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}
