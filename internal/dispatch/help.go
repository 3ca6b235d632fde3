package dispatch

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jeanhaley32/lara/internal/constants"
)

// WriteHelp prints every registered command grouped for display.
func (d *Dispatcher) WriteHelp() error {
	byGroup := make(map[string][]Command)
	for _, c := range d.registry.Commands() {
		byGroup[c.Group] = append(byGroup[c.Group], c)
	}

	fmt.Fprintf(d.Out, "Usage: %s <command> [args]\n", constants.AppName)

	w := tabwriter.NewWriter(d.Out, 0, 0, 2, ' ', 0)
	for _, group := range Groups {
		cmds := byGroup[group]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", group)
		for _, c := range cmds {
			name := c.Name
			if c.Param != "" {
				name += " <" + c.Param + ">"
			}
			fmt.Fprintf(w, "  %s\t%s\n", name, c.Summary)
		}
	}
	return w.Flush()
}

func runHelp(ctx context.Context, d *Dispatcher) error {
	return d.WriteHelp()
}
