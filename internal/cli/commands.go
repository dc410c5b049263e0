package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/tightbind/internal/config"
	"github.com/san-kum/tightbind/internal/experiment"
	"github.com/san-kum/tightbind/internal/logger"
	"github.com/san-kum/tightbind/internal/render"
	"github.com/san-kum/tightbind/internal/storage"
	"github.com/san-kum/tightbind/internal/viz"
)

var heading = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)

// loadConfig resolves defaults, then the preset, then the config file, then
// --out.
func (a *app) loadConfig(example string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if a.preset != "" {
		cfg = config.GetPreset(example, a.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", a.preset, config.ListPresets(example))
		}
	}
	if a.cfgFile != "" {
		loaded, err := config.LoadOver(cfg, a.cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if a.outDir != "" {
		cfg.OutputDir = a.outDir
	}
	cfg.Example = example
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) runExample(cmd *cobra.Command, args []string) error {
	name := args[0]
	ex, err := a.registry.Get(name)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, a.registry.List())
	}
	cfg, err := a.loadConfig(name)
	if err != nil {
		return err
	}
	if a.cfgFile != "" && !cmd.Flags().Changed("log-level") {
		if err := logger.Setup(logger.Config{Level: cfg.LogLevel, JSON: a.logJSON, Writer: cmd.ErrOrStderr()}); err != nil {
			return err
		}
	}

	log := logger.L()
	out := cmd.OutOrStdout()
	env := experiment.Env{OutputDir: cfg.OutputDir, Out: out, Logger: log, Config: cfg}

	start := time.Now()
	res, err := ex.Run(cmd.Context(), env)
	if err != nil {
		return err
	}
	log.Info("example.finished", "example", name, "figures", len(res.Figures), "elapsed", time.Since(start))

	for _, f := range res.Figures {
		fmt.Fprintf(out, "figure: %s\n", f)
	}
	if a.ascii {
		printSeries(out, res.Series)
	}

	if a.save {
		st := a.store()
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, cfg, storage.Record{
			Figures: res.Figures,
			Scalars: res.Scalars,
			Series:  res.Series,
			Lines:   res.Lines,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}
	return nil
}

func printSeries(out io.Writer, series map[string][]float64) {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if graph := render.ASCII(name, 10, 80, series[name]); graph != "" {
			fmt.Fprintln(out, graph)
			fmt.Fprintln(out)
		}
	}
}

func (a *app) listExamples(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, name := range a.registry.List() {
		ex, err := a.registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", name, ex.Description())
	}
	return w.Flush()
}

func (a *app) listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Fprintf(out, "no presets for example: %s\n", args[0])
		return nil
	}
	fmt.Fprintf(out, "presets for %s:\n", args[0])
	for _, p := range presets {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}

func (a *app) writeConfig(cmd *cobra.Command, args []string) error {
	if err := config.Save(args[0], config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func (a *app) listRuns(cmd *cobra.Command, args []string) error {
	runs, err := a.store().List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXAMPLE\tTIME\tFIGURES\tSERIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Example,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Figures),
			len(run.Series),
		)
	}
	return w.Flush()
}

func (a *app) showRun(cmd *cobra.Command, args []string) error {
	st := a.store()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, heading.Render(meta.ID))
	fmt.Fprintf(out, "example: %s\n", meta.Example)
	fmt.Fprintf(out, "time: %s\n", meta.Timestamp.Format(time.RFC3339))
	for _, f := range meta.Figures {
		fmt.Fprintf(out, "figure: %s\n", f)
	}

	if len(meta.Scalars) > 0 {
		names := make([]string, 0, len(meta.Scalars))
		for name := range meta.Scalars {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(out, "\nscalars:")
		for _, name := range names {
			fmt.Fprintf(out, "  %s: %.6g\n", name, meta.Scalars[name])
		}
	}
	fmt.Fprintln(out)
	printSeries(out, series)
	return nil
}

func (a *app) exportCSV(cmd *cobra.Command, args []string) error {
	return a.store().ExportCSV(args[0], cmd.OutOrStdout())
}

func (a *app) exportJSON(cmd *cobra.Command, args []string) error {
	if a.jsonPath != "" {
		return a.store().ExportJSONFile(args[0], a.jsonPath)
	}
	return a.store().ExportJSON(args[0], cmd.OutOrStdout())
}

func (a *app) browse(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(args[0])
	if err != nil {
		return err
	}
	env := experiment.Env{OutputDir: cfg.OutputDir, Logger: logger.L(), Config: cfg}
	states, err := experiment.SolveStates(cmd.Context(), env, args[0], a.potential)
	if err != nil {
		return err
	}
	return viz.Run(states)
}

// RunStandalone runs one example with the default configuration, as the
// single-purpose binaries do, and exits with status 1 on error.
func RunStandalone(name string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runStandalone(ctx, name, os.Stdout); err != nil {
		logger.L().Error("example failed", "example", name, "err", err)
		stop()
		os.Exit(1)
	}
}

func runStandalone(ctx context.Context, name string, out io.Writer) error {
	ex, err := experiment.NewRegistry().Get(name)
	if err != nil {
		return err
	}
	cfg := config.DefaultConfig()
	_, err = ex.Run(ctx, experiment.Env{
		OutputDir: cfg.OutputDir,
		Out:       out,
		Logger:    logger.L(),
		Config:    cfg,
	})
	return err
}
