package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/jeanhaley32/lara/internal/constants"
	"github.com/jeanhaley32/lara/internal/state"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func runStatus(ctx context.Context, d *Dispatcher) error {
	s := state.NewDetector(d.cfg).Detect()

	configSource := s.ConfigSource
	if configSource == "" {
		configSource = "(defaults)"
	}

	fmt.Fprintln(d.Out, "Project Status")
	fmt.Fprintln(d.Out, "==============")
	fmt.Fprintln(d.Out)

	w := tabwriter.NewWriter(d.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Project:\t%s (%s)\n", s.ProjectName, s.ProjectDir)
	fmt.Fprintf(w, "Compose file:\t%s (exists: %s)\n", d.composeFile, yesNo(s.ComposeExists))
	fmt.Fprintf(w, "Env file:\t%s (exists: %s)\n", s.EnvFile, yesNo(s.EnvExists))
	fmt.Fprintf(w, "Env template:\t%s (exists: %s)\n", s.TemplateFile, yesNo(s.TemplateExists))
	fmt.Fprintf(w, "Service:\t%s\n", s.Service)
	fmt.Fprintf(w, "User:\t%s\n", d.user)
	fmt.Fprintf(w, "Config:\t%s\n", configSource)
	fmt.Fprintf(w, "Platform:\t%s\n", s.Platform)
	if err := w.Flush(); err != nil {
		return err
	}

	if !s.EnvExists {
		fmt.Fprintf(d.Out, "\nNo %s yet. Create it with: %s bootstrap\n", d.cfg.EnvFile, constants.AppName)
	}
	return nil
}

// readEnv loads the working env file, falling back to its template.
// It returns an empty map when neither exists.
func readEnv(d *Dispatcher) (map[string]string, string, error) {
	for _, name := range []string{d.cfg.EnvFile, d.cfg.EnvTemplate} {
		path := d.cfg.Path(name)
		env, err := godotenv.Read(path)
		if err == nil {
			return env, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return map[string]string{}, "", nil
}

func runPorts(ctx context.Context, d *Dispatcher) error {
	env, source, err := readEnv(d)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(d.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHOST\tCONTAINER\tSOURCE")
	for _, p := range d.cfg.Ports {
		host := strconv.Itoa(p.Default)
		origin := "default"
		if v, ok := env[p.EnvKey]; ok && v != "" {
			host = v
			origin = p.EnvKey
		}
		fmt.Fprintf(w, "%s\tlocalhost:%s\t%d\t%s\n", p.Name, host, p.ContainerPort, origin)
	}
	fmt.Fprintf(w, "serve\t-\t%d\tserve_port\n", d.cfg.ServePort)
	if err := w.Flush(); err != nil {
		return err
	}

	if source != "" {
		fmt.Fprintf(d.Out, "\nRead from %s\n", source)
	}
	return nil
}
