package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jeanhaley32/lara/internal/compose"
	"github.com/jeanhaley32/lara/internal/config"
	"github.com/jeanhaley32/lara/internal/constants"
	"github.com/jeanhaley32/lara/internal/dispatch"
)

// projectDir creates an isolated project and makes it the working directory.
func projectDir(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{constants.EnvComposeFile, constants.EnvUser, constants.EnvService, constants.EnvDocker, constants.EnvDebug, constants.EnvLogLevel} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, constants.DefaultComposeFile), []byte("services: {}\n"), 0644); err != nil {
		t.Fatalf("Failed to write compose file: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd(constants.DefaultServices, args)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestSplitGlobalFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool("dry-run", false, "")
	fs.StringP("file", "f", "", "")

	flags, rest, err := splitGlobalFlags(fs, []string{"--dry-run", "-f", "other.yml", "artisan", "migrate", "--force"})
	if err != nil {
		t.Fatalf("splitGlobalFlags() error = %v", err)
	}
	if !reflect.DeepEqual(flags, []string{"--dry-run", "-f", "other.yml"}) {
		t.Errorf("flags = %q", flags)
	}
	if !reflect.DeepEqual(rest, []string{"artisan", "migrate", "--force"}) {
		t.Errorf("rest = %q", rest)
	}
	if fs.Changed("dry-run") {
		t.Error("splitGlobalFlags() applied a flag")
	}
}

func TestSplitGlobalFlags_StopsAtUnknownAndDash(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool("dry-run", false, "")

	_, rest, err := splitGlobalFlags(fs, []string{"--version"})
	if err != nil || !reflect.DeepEqual(rest, []string{"--version"}) {
		t.Errorf("unknown flag: rest = %q, err = %v", rest, err)
	}

	flags, rest, err := splitGlobalFlags(fs, []string{"--dry-run", "--", "--dry-run"})
	if err != nil || !reflect.DeepEqual(flags, []string{"--dry-run"}) || !reflect.DeepEqual(rest, []string{"--dry-run"}) {
		t.Errorf("after dash: flags = %q, rest = %q, err = %v", flags, rest, err)
	}
}

func TestSplitGlobalFlags_MissingValue(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("file", "", "")

	if _, _, err := splitGlobalFlags(fs, []string{"--file"}); err == nil {
		t.Error("splitGlobalFlags() expected error for missing value")
	}
}

func TestPassThroughArgs(t *testing.T) {
	var verbose bool
	var file string
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.BoolVarP(&verbose, "verbose", "v", false, "")
	fs.StringVarP(&file, "file", "f", "", "")

	words, err := passThroughArgs(fs, "composer", []string{"-f", "other.yml", "composer", "-f", "x", "-v"})
	if err != nil {
		t.Fatalf("passThroughArgs() error = %v", err)
	}
	if !reflect.DeepEqual(words, []string{"-f", "x", "-v"}) {
		t.Errorf("words = %q, want %q", words, []string{"-f", "x", "-v"})
	}
	if file != "other.yml" || verbose {
		t.Errorf("flags: file = %q, verbose = %v, want only the leading -f applied", file, verbose)
	}

	if _, err := passThroughArgs(fs, "npm", []string{"--bogus", "npm", "run"}); err == nil {
		t.Error("passThroughArgs() expected error for unknown leading flag")
	}
}

// recordingBackend keeps the args of every call.
type recordingBackend struct {
	calls [][]string
}

func (r *recordingBackend) Run(ctx context.Context, args []string) error {
	r.calls = append(r.calls, args)
	return nil
}

func (r *recordingBackend) Start(ctx context.Context, args []string) error {
	r.calls = append(r.calls, args)
	return nil
}

func recordBackend(t *testing.T) *recordingBackend {
	t.Helper()
	rec := &recordingBackend{}
	orig := newBackend
	newBackend = func(*cobra.Command, *config.Config, bool) compose.Backend { return rec }
	t.Cleanup(func() { newBackend = orig })
	return rec
}

func hasSuffix(args, suffix []string) bool {
	return len(args) >= len(suffix) && reflect.DeepEqual(args[len(args)-len(suffix):], suffix)
}

func TestRoot_DryRunPassesArgumentThrough(t *testing.T) {
	dir := projectDir(t)

	_, stderr, err := execute(t, "--dry-run", "artisan", "migrate", "--force")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr, "+ docker compose -f "+filepath.Join(dir, constants.DefaultComposeFile)) {
		t.Errorf("stderr = %q, want compose invocation", stderr)
	}
	if !strings.Contains(stderr, "php artisan migrate --force") {
		t.Errorf("stderr = %q, want argument passed through", stderr)
	}
}

func TestRoot_ToolFlagsAfterNameAreNotGlobal(t *testing.T) {
	dir := projectDir(t)
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })

	_, stderr, err := execute(t, "--dry-run", "npm", "-v")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr, "laravel.test npm -v\n") {
		t.Errorf("stderr = %q, want npm -v", stderr)
	}
	if log.GetLevel() == log.DebugLevel {
		t.Error("-v after the name enabled debug logging")
	}

	_, stderr, err = execute(t, "--dry-run", "composer", "-f", "x")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr, "-f "+filepath.Join(dir, constants.DefaultComposeFile)+" ") {
		t.Errorf("stderr = %q, want the default compose file", stderr)
	}
	if !strings.Contains(stderr, "composer -f x\n") {
		t.Errorf("stderr = %q, want composer -f x", stderr)
	}
}

func TestRoot_PassThroughKeepsWords(t *testing.T) {
	projectDir(t)
	rec := recordBackend(t)

	if _, _, err := execute(t, "artisan", "make:migration", "add votes"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, _, err := execute(t, "artisan", "tinker", "--execute=echo 'hi'; echo 2"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(rec.calls) != 2 {
		t.Fatalf("calls = %q, want 2", rec.calls)
	}
	if want := []string{"php", "artisan", "make:migration", "add votes"}; !hasSuffix(rec.calls[0], want) {
		t.Errorf("args = %q, want suffix %q", rec.calls[0], want)
	}
	if want := []string{"php", "artisan", "tinker", "--execute=echo 'hi'; echo 2"}; !hasSuffix(rec.calls[1], want) {
		t.Errorf("args = %q, want suffix %q", rec.calls[1], want)
	}
}

func TestRoot_SingleArgumentIsSplit(t *testing.T) {
	projectDir(t)
	rec := recordBackend(t)

	if _, _, err := execute(t, "artisan", "make:model Post -m"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := []string{"artisan", "make:model", "Post", "-m"}; len(rec.calls) != 1 || !hasSuffix(rec.calls[0], want) {
		t.Errorf("calls = %q, want suffix %q", rec.calls, want)
	}
}

func TestRoot_DryRunFixedCommand(t *testing.T) {
	projectDir(t)

	_, stderr, err := execute(t, "--dry-run", "--user", "www", "migrate")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr, "-u www laravel.test php artisan migrate") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRoot_UnknownCommand(t *testing.T) {
	projectDir(t)

	tests := [][]string{
		{"--dry-run", "deploy-prod"},
		{"--dry-run", "deploy", "--force"},
		{"deploy", "-x", "prod"},
	}
	for _, args := range tests {
		_, stderr, err := execute(t, args...)
		if !errors.Is(err, dispatch.ErrUnknownCommand) {
			t.Errorf("Execute(%q) error = %v, want ErrUnknownCommand", args, err)
		}
		if stderr != "" {
			t.Errorf("Execute(%q) stderr = %q, want no compose invocation", args, stderr)
		}
	}
}

func TestRoot_HelpListsShortcuts(t *testing.T) {
	projectDir(t)

	stdout, _, err := execute(t, "help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"cache-clear", "artisan <cmd>", "logs-mysql", "setup"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestRoot_Version(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, version) {
		t.Errorf("version output = %q", stdout)
	}
}
