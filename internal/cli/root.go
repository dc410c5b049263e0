// Package cli wires the examples, run storage and state browser into the
// tightbind command line.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/tightbind/internal/config"
	"github.com/san-kum/tightbind/internal/experiment"
	"github.com/san-kum/tightbind/internal/logger"
	"github.com/san-kum/tightbind/internal/storage"
)

type app struct {
	dataDir   string
	outDir    string
	logLevel  string
	logJSON   bool
	registry  *experiment.Registry
	cfgFile   string
	preset    string
	save      bool
	ascii     bool
	potential string
	jsonPath  string
}

func (a *app) store() *storage.Store { return storage.New(a.dataDir) }

// NewRootCommand builds the tightbind command tree.
func NewRootCommand() *cobra.Command {
	a := &app{registry: experiment.NewRegistry()}

	rootCmd := &cobra.Command{
		Use:           "tightbind",
		Short:         "tight-binding example collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Setup(logger.Config{
				Level:  a.logLevel,
				JSON:   a.logJSON,
				Writer: cmd.ErrOrStderr(),
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dataDir, "data", storage.DefaultDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&a.outDir, "out", "", "figure directory (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "log as JSON")

	runCmd := &cobra.Command{
		Use:   "run [example]",
		Short: "run an example",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runExample,
	}
	runCmd.Flags().StringVar(&a.cfgFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&a.preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&a.save, "save", false, "store the run in the data directory")
	runCmd.Flags().BoolVar(&a.ascii, "ascii", false, "also plot the result series in the terminal")

	examplesCmd := &cobra.Command{
		Use:   "examples",
		Short: "list examples",
		Args:  cobra.NoArgs,
		RunE:  a.listExamples,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [example]",
		Short: "list available presets for an example",
		Args:  cobra.ExactArgs(1),
		RunE:  a.listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  a.writeConfig,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  a.listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  a.showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  a.exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and series to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  a.exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&a.jsonPath, "output", "o", "", "write to a file instead of stdout")

	browseCmd := &cobra.Command{
		Use:       "browse [density|annulus|potentials]",
		Short:     "browse eigenstates interactively",
		Args:      cobra.ExactArgs(1),
		ValidArgs: experiment.BrowsableExamples(),
		RunE:      a.browse,
	}
	browseCmd.Flags().StringVar(&a.cfgFile, "config", "", "config file path (yaml)")
	browseCmd.Flags().StringVar(&a.potential, "potential", "HarmonicOscillator", "potential for the potentials example")

	rootCmd.AddCommand(runCmd, examplesCmd, presetsCmd, configCmd, runsCmd, showCmd, exportCSVCmd, exportJSONCmd, browseCmd)
	return rootCmd
}

// Execute runs the tightbind CLI and exits with status 1 on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		logger.L().Error("command failed", "err", err)
		stop()
		os.Exit(1)
	}
}
