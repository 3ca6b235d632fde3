package compose

import "context"

// Backend executes compose subcommands against a single compose project.
//
// Run blocks until the process exits. Start returns as soon as the process
// has been started and never waits for it; the process outlives the call.
type Backend interface {
	// Run executes the subcommand, streaming its output to the invoker.
	// A non-zero exit is reported as a *ProcessError.
	Run(ctx context.Context, args []string) error

	// Start launches the subcommand in the background and returns immediately.
	Start(ctx context.Context, args []string) error
}
