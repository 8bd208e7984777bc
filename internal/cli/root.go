// Package cli implements the clausebook command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/clausebook/internal/logging"
	"github.com/mesh-intelligence/clausebook/internal/paths"
	"github.com/mesh-intelligence/clausebook/pkg/clausebook"
	"github.com/mesh-intelligence/clausebook/pkg/types"
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
	jsonMode  bool
	logLevel  string
}

// app carries the state shared by one invocation of the root command.
type app struct {
	flags    rootFlags
	settings settings
	logger   *zap.Logger
}

// NewRootCmd creates the top-level "clausebook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "clausebook",
		Short: "A library of reusable document clauses",
		Long: `Clausebook keeps versioned, categorized text fragments (legal clauses,
boilerplate, signature blocks, headers, footers) and fills their [PLACEHOLDER]
tokens before the text is inserted into a document.`,
		Version:       clausebook.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// version needs no configuration; init writes it first.
			switch cmd.Name() {
			case "version", "init":
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/clausebook)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/clausebook)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newCategoriesCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newSearchCmd(a),
		newResolveCmd(a),
		newRegisterCmd(a),
		newInsertCmd(a),
		newServeCmd(a),
		newExportCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "clausebook:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// setup resolves directories, loads config.yaml, and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolving config dir: %w", err))
	}
	s, err := loadSettings(configDir, a.flags)
	if err != nil {
		return sysError(err)
	}
	a.settings = s

	logger, err := logging.New(s.logLevel)
	if err != nil {
		return userError(err)
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config_dir", s.configDir),
		zap.String("data_dir", s.dataDir),
		zap.String("backend", s.backend))
	return nil
}

// openLibrary opens the configured backend. The caller must Close it.
func (a *app) openLibrary() (clausebook.Library, error) {
	lib, err := clausebook.Open(a.settings.libraryConfig(), clausebook.WithLogger(a.logger))
	if err != nil {
		if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) {
			return nil, userError(fmt.Errorf("opening library: %w", err))
		}
		return nil, sysError(fmt.Errorf("opening library: %w", err))
	}
	return lib, nil
}

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps err to a process exit code. Errors without an explicit code
// come from argument and flag parsing and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// warn writes a non-fatal message to the command's stderr.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "warning: "+format+"\n", args...)
}
