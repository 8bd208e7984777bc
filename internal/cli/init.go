package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/clausebook/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize clausebook storage",
		Long: `Create the configuration and data directories, write config.yaml if it
is missing, and seed the catalog on first run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a)
		},
	}
}

func runInit(cmd *cobra.Command, a *app) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolving config dir: %w", err))
	}
	if err := ensureDir(configDir); err != nil {
		return sysError(err)
	}

	// Record an explicit --data-dir so later runs find the same catalog.
	cfg := configFile{Backend: defaultBackend}
	if a.flags.dataDir != "" {
		abs, err := filepath.Abs(a.flags.dataDir)
		if err != nil {
			return sysError(fmt.Errorf("resolving data dir: %w", err))
		}
		cfg.DataDir = abs
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), cfg); err != nil {
		return sysError(fmt.Errorf("writing config: %w", err))
	}

	if err := a.setup(cmd); err != nil {
		return err
	}
	lib, err := a.openLibrary()
	if err != nil {
		return err
	}
	n := lib.Len()
	if err := lib.Close(); err != nil {
		return sysError(fmt.Errorf("closing library: %w", err))
	}

	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"config_dir": a.settings.configDir,
			"data_dir":   a.settings.dataDir,
			"backend":    a.settings.backend,
			"entities":   n,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "clausebook initialized: %d entities (%s backend, data in %s)\n",
		n, a.settings.backend, a.settings.dataDir)
	return nil
}
