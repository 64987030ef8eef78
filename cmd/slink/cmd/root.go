// Package cmd wires the slink command line surface. Running the bare
// binary installs; --dry-run, --clean, and --list switch the mode.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/slink-tools/slink/internal/config"
	"github.com/slink-tools/slink/internal/logging"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"

	// Global flags
	configPath string
	verbose    bool

	// Mode flags
	dryRun   bool
	clean    bool
	list     bool
	listMiss bool
	listRefs string
	groups   bool
)

var rootCmd = &cobra.Command{
	Use:   "slink",
	Short: "Declarative skill deployment via symlinks",
	Long: `slink deploys skill bundles into AI harness directories as symbolic
links, driven by a single TOML configuration.

Sources are searched in order and the first match wins. Every declared
skill is validated before anything is linked, target directories are
marked as managed before slink mutates them, and pre-existing entries
slink does not own are never touched.

With no flags, slink installs. Use --dry-run to preview, --clean to
invert installation, and --list to inspect the configured scopes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $"+config.EnvConfigPath+" or ~/.config/slink/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report intended actions without touching the filesystem")
	rootCmd.Flags().BoolVar(&clean, "clean", false, "remove managed links and markers from every known target")
	rootCmd.Flags().BoolVarP(&list, "list", "l", false, "list sources and per-scope skill declarations")
	rootCmd.Flags().BoolVar(&listMiss, "missing", false, "with --list, show cross-referenced skills no source contains")
	rootCmd.Flags().StringVar(&listRefs, "refs", "", "with --list, show incoming and outgoing references for a skill")
	rootCmd.Flags().BoolVar(&groups, "groups", false, "with --list, group skills by reference cluster")

	rootCmd.MarkFlagsMutuallyExclusive("dry-run", "clean", "list")
	rootCmd.MarkFlagsMutuallyExclusive("missing", "refs", "groups")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("slink {{.Version}}\n")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	if listMiss || listRefs != "" || groups {
		list = true
	}

	switch {
	case clean:
		return runCleanMode(cmd, cfg, logger)
	case list:
		return runListMode(cmd, cfg)
	default:
		return runInstallMode(cmd, cfg, logger, dryRun)
	}
}

// loadConfig locates and loads the configuration and builds the logger
// it asks for.
func loadConfig() (*config.Config, *slog.Logger, error) {
	path, err := config.Locate(configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewFromConfig(cfg, verbose), nil
}
