// Package cli implements the tasklist command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/tasklist/internal/export"
	"github.com/mesh-intelligence/tasklist/internal/locale"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	locale    string
	jsonMode  bool
	verbose   bool
}

// app is the per-invocation state shared by the subcommands.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "tasklist" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:   "tasklist",
		Short: "A categorized to-do list",
		Long: "tasklist keeps a local list of tasks, each filed under Groceries,\n" +
			"College or Payments, and offers a terminal UI in English, Russian and Uzbek.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/tasklist)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/tasklist)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: sqlite, file or memory")
	pf.StringVar(&a.flags.locale, "locale", "", "label language code (default: from $LANG)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug details to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newResetCmd(a),
		newExportCmd(a),
		newLocalesCmd(a),
		newTUICmd(a),
	)
	return root
}

// setup resolves directories, loads the configuration and builds the
// logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if cmd.Name() == "version" {
		return nil
	}
	if err := a.loadConfig(cmd); err != nil {
		return sysError(err)
	}
	a.logger.Debug("configuration loaded",
		"config_dir", a.configDir,
		"backend", a.cfg.GetString(cfgKeyBackend),
		"file", a.cfg.ConfigFileUsed())
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) && ee.reported {
		return ee.code
	}
	fmt.Fprintln(stderr, "tasklist:", err)
	return exitCode(err)
}

// exitError attaches an exit code to an error. reported means the user
// has already seen the message.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// userErrors are failures caused by the input rather than the system.
var userErrors = []error{
	types.ErrEmptyInput,
	types.ErrDuplicate,
	types.ErrInvalidCategory,
	types.ErrNotFound,
	types.ErrInvalidPosition,
	types.ErrAmbiguousRef,
	types.ErrBackendUnknown,
	types.ErrInvalidKey,
	locale.ErrUnknownLocale,
	locale.ErrInvalidBundle,
	export.ErrUnknownFormat,
}

// exitCode maps err to a process exit code. Errors that reach here without
// a code come from cobra itself (bad flags, wrong argument count).
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// classify wraps err with the exit code its cause calls for.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}
