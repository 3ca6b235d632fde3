package dispatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Values are substituted into invocation templates.
type Values struct {
	Exec    string
	User    string
	Service string
	Cmd     string
	Port    int
}

// Render substitutes v into tmpl. Cmd is inserted verbatim.
func Render(tmpl string, v Values) string {
	r := strings.NewReplacer(
		"{exec}", v.Exec,
		"{user}", v.User,
		"{service}", v.Service,
		"{cmd}", v.Cmd,
		"{port}", strconv.Itoa(v.Port),
	)
	// Trailing space is left behind when {cmd} is empty
	return strings.TrimSpace(r.Replace(tmpl))
}

// Split breaks a rendered line into arguments using shell quoting rules.
// Variables, globs and backticks are not expanded, and operators such as
// ; | & < > are ordinary characters since no shell interprets them.
func Split(line string) ([]string, error) {
	args, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("cannot split %q: %w", line, err)
	}
	return args, nil
}

// JoinArgs quotes words so that Split returns them unchanged.
// A single word is returned as is and split like any other argument.
func JoinArgs(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}
	return shellquote.Join(words...)
}
