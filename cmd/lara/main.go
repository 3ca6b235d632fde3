package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jeanhaley32/lara/internal/compose"
	"github.com/jeanhaley32/lara/internal/config"
	"github.com/jeanhaley32/lara/internal/constants"
	"github.com/jeanhaley32/lara/internal/dispatch"
	"github.com/jeanhaley32/lara/internal/terminal"
)

var version = "0.1.0"

// globalFlags holds the root persistent flags.
type globalFlags struct {
	configPath  string
	composeFile string
	user        string
	service     string
	dryRun      bool
	verbose     bool
}

// setupSignalPassThrough keeps SIGINT from killing the wrapper while a child runs.
// The child is in the same process group and receives the signal itself.
// Returns a function that restores default handling.
func setupSignalPassThrough() func() {
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(sigChan, os.Interrupt)

	go func() {
		for {
			select {
			case sig := <-sigChan:
				log.WithField("signal", sig).Debug("signal left to child process")
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}

func configureLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.WarnLevel)

	if raw := os.Getenv(constants.EnvLogLevel); raw != "" {
		if level, err := log.ParseLevel(raw); err == nil {
			log.SetLevel(level)
		} else {
			log.Warnf("invalid log level %s, defaulting to warn", raw)
		}
	}
	if verbose || os.Getenv(constants.EnvDebug) == "1" {
		log.SetLevel(log.DebugLevel)
	}
}

// newDispatcher loads configuration for the current directory and builds a dispatcher writing to cmd's output.
func newDispatcher(cmd *cobra.Command, flags *globalFlags) (*dispatch.Dispatcher, error) {
	configureLogging(flags.verbose)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.Load(cwd, config.Overrides{
		ConfigPath:  flags.configPath,
		ComposeFile: flags.composeFile,
		User:        flags.user,
		Service:     flags.service,
	}, os.Getenv)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"project": cfg.ProjectDir,
		"compose": cfg.ComposePath(),
		"config":  cfg.Source,
	}).Debug("configuration loaded")

	d := dispatch.New(cfg, newBackend(cmd, cfg, flags.dryRun))
	d.Out = cmd.OutOrStdout()
	d.Interactive = terminal.IsTerminal()
	return d, nil
}

// newBackend builds the compose backend for cfg. Tests replace it to record invocations.
var newBackend = func(cmd *cobra.Command, cfg *config.Config, dryRun bool) compose.Backend {
	if dryRun {
		return &compose.DryRun{Binary: cfg.Docker, ComposeFile: cfg.ComposePath(), Out: cmd.ErrOrStderr()}
	}
	return compose.NewManager(cfg.Docker, cfg.ComposePath(), cfg.ProjectDir)
}

// registryServices returns the services the command tree is generated for.
// Flags are not parsed yet, so only the environment and config files are consulted.
func registryServices() []string {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Default().Services
	}
	cfg, err := config.Load(cwd, config.Overrides{}, os.Getenv)
	if err != nil {
		return config.Default().Services
	}
	return cfg.Services
}

func main() {
	defer setupSignalPassThrough()()

	rootCmd := newRootCmd(registryServices(), os.Args[1:])
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var procErr *compose.ProcessError
	switch {
	case errors.As(err, &procErr):
		// The process already reported its own failure
		log.WithError(err).Debug("command failed")
		os.Exit(procErr.Code)
	case errors.Is(err, dispatch.ErrUnknownCommand):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(constants.ExitUnknownCommand)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree for args. Pass-through commands read
// args directly, since cobra cannot tell which words preceded their name.
func newRootCmd(services []string, args []string) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           constants.AppName + " <command> [args]",
		Short:         "Compose shortcuts for a containerized Laravel project",
		Long:          "Named shortcuts that run docker compose, artisan, composer and npm inside the project's containers.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher(cmd, flags)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return d.WriteHelp()
			}
			// Names outside the generated tree, such as logs for a service added by --config
			return d.Run(cmd.Context(), args[0], dispatch.JoinArgs(args[1:]))
		},
	}
	rootCmd.SetArgs(args)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		// An unregistered name followed by its own flags is still an unknown command
		if cmd != cmd.Root() {
			return err
		}
		if _, rest, splitErr := splitGlobalFlags(cmd.PersistentFlags(), args); splitErr == nil && len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
			return &dispatch.UnknownCommandError{Name: rest[0]}
		}
		return err
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to a config file (default: ./"+constants.LocalConfigFile+" or the global config)")
	pf.StringVarP(&flags.composeFile, "file", "f", "", "Compose file (default: "+constants.DefaultComposeFile+")")
	pf.StringVarP(&flags.user, "user", "u", "", "User that in-container commands run as (default: "+constants.DefaultUser+")")
	pf.StringVar(&flags.service, "service", "", "Primary application service (default: "+constants.DefaultService+")")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "Print compose commands instead of running them")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	for _, group := range dispatch.Groups {
		rootCmd.AddGroup(&cobra.Group{ID: group, Title: group + ":"})
	}

	for _, c := range dispatch.DefaultCommands(services) {
		if c.Name == "help" {
			continue
		}
		rootCmd.AddCommand(newShortcutCmd(c, flags, args))
	}
	rootCmd.SetHelpCommand(newHelpCmd(flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newShortcutCmd wraps one registry entry as a cobra command.
func newShortcutCmd(c dispatch.Command, flags *globalFlags, rawArgs []string) *cobra.Command {
	name := c.Name
	cmd := &cobra.Command{
		Use:     name,
		Short:   c.Summary,
		GroupID: c.Group,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDispatcher(cmd, flags)
			if err != nil {
				return err
			}
			return d.Run(cmd.Context(), name, "")
		},
	}

	if c.Param != "" {
		// Everything after the name belongs to the wrapped tool, flags included.
		// Global flags must come before the name.
		cmd.Use = name + " <" + c.Param + ">"
		cmd.Args = cobra.ArbitraryArgs
		cmd.DisableFlagParsing = true
		cmd.RunE = func(cmd *cobra.Command, _ []string) error {
			words, err := passThroughArgs(cmd.Root().PersistentFlags(), name, rawArgs)
			if err != nil {
				return err
			}
			d, err := newDispatcher(cmd, flags)
			if err != nil {
				return err
			}
			return d.Run(cmd.Context(), name, dispatch.JoinArgs(words))
		}
	}

	return cmd
}

func newHelpCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "List all commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				target, _, err := cmd.Root().Find(args)
				if err != nil || target == cmd.Root() {
					return &dispatch.UnknownCommandError{Name: args[0]}
				}
				return target.Help()
			}
			d, err := newDispatcher(cmd, flags)
			if err != nil {
				return err
			}
			return d.WriteHelp()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", constants.AppName, version)
			fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
