package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jeanhaley32/lara/internal/compose"
	"github.com/jeanhaley32/lara/internal/config"
	"github.com/jeanhaley32/lara/internal/constants"
)

// Invocation is one rendered backend call.
type Invocation struct {
	Line string
	Args []string
	Mode Mode
}

// Dispatcher resolves shortcut names and runs them against a backend.
type Dispatcher struct {
	// Fixed at construction
	composeFile string
	user        string

	// Interactive selects a TTY for exec; when false exec gets -T.
	Interactive bool

	Out io.Writer
	Log log.FieldLogger

	cfg      *config.Config
	backend  compose.Backend
	registry *Registry
}

// New creates a dispatcher for cfg using the default registry.
func New(cfg *config.Config, backend compose.Backend) *Dispatcher {
	return &Dispatcher{
		composeFile: cfg.ComposePath(),
		user:        cfg.User,
		Out:         os.Stdout,
		Log:         log.StandardLogger(),
		cfg:         cfg,
		backend:     backend,
		registry:    DefaultRegistry(cfg.Services),
	}
}

// Registry returns the registry the dispatcher resolves names in.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// ComposeFile returns the compose file every invocation targets.
func (d *Dispatcher) ComposeFile() string {
	return d.composeFile
}

// User returns the in-container user commands run as.
func (d *Dispatcher) User() string {
	return d.user
}

// Config returns the configuration the dispatcher was built from.
func (d *Dispatcher) Config() *config.Config {
	return d.cfg
}

// Run executes the named command. arg is the caller argument for parameterized commands.
// An unregistered name fails with ErrUnknownCommand before anything runs.
func (d *Dispatcher) Run(ctx context.Context, name, arg string) error {
	c, ok := d.registry.Lookup(name)
	if !ok {
		return &UnknownCommandError{Name: name}
	}
	return d.run(ctx, c, arg)
}

func (d *Dispatcher) run(ctx context.Context, c Command, arg string) error {
	switch {
	case c.IsHost():
		d.Log.WithField("command", c.Name).Debug("running builtin")
		return c.Builtin(ctx, d)
	case c.IsComposite():
		for _, step := range c.Steps {
			sc, ok := d.registry.Lookup(step)
			if !ok {
				return &UnknownCommandError{Name: step}
			}
			if err := d.run(ctx, sc, ""); err != nil {
				return fmt.Errorf("%s: step %s failed: %w", c.Name, step, err)
			}
		}
		return nil
	}

	if c.Param != "" && strings.TrimSpace(arg) == "" {
		d.Log.WithField("command", c.Name).Warnf("no %s given", c.Param)
	}

	invs, err := d.invocations(c, arg)
	if err != nil {
		return err
	}
	for _, inv := range invs {
		if err := d.execute(ctx, c, inv); err != nil {
			return err
		}
	}
	return nil
}

// Invocations renders the backend calls the named command would make, without running them.
// Host and composite commands render none.
func (d *Dispatcher) Invocations(name, arg string) ([]Invocation, error) {
	c, ok := d.registry.Lookup(name)
	if !ok {
		return nil, &UnknownCommandError{Name: name}
	}
	return d.invocations(c, arg)
}

// invocations renders every template up front so a bad one fails before any process starts.
func (d *Dispatcher) invocations(c Command, arg string) ([]Invocation, error) {
	v := Values{
		Exec:    "exec",
		User:    d.user,
		Service: d.cfg.Service,
		Cmd:     arg,
		Port:    d.cfg.ServePort,
	}
	if !d.Interactive {
		v.Exec = "exec -T"
	}

	invs := make([]Invocation, 0, len(c.Templates))
	for _, tmpl := range c.Templates {
		line := Render(tmpl, v)
		args, err := Split(line)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
		invs = append(invs, Invocation{Line: line, Args: args, Mode: c.Mode})
	}
	return invs, nil
}

func (d *Dispatcher) execute(ctx context.Context, c Command, inv Invocation) error {
	logger := d.Log.WithFields(log.Fields{
		"command": c.Name,
		"mode":    inv.Mode.String(),
		"line":    inv.Line,
	})
	logger.Debug("invoking compose")

	switch inv.Mode {
	case Detached:
		if err := d.backend.Start(ctx, inv.Args); err != nil {
			return err
		}
		if c.StopWith != "" {
			fmt.Fprintf(d.Out, "Started %s in the background. Run '%s %s' to stop it.\n", c.Name, constants.AppName, c.StopWith)
		}
		return nil
	case BestEffort:
		err := d.backend.Run(ctx, inv.Args)
		var procErr *compose.ProcessError
		if errors.As(err, &procErr) {
			logger.WithField("code", procErr.Code).Debug("ignoring failure")
			return nil
		}
		return err
	default:
		return d.backend.Run(ctx, inv.Args)
	}
}
