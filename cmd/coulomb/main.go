package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/pkg/profile"
	"github.com/san-kum/coulomb/internal/bench"
	"github.com/san-kum/coulomb/internal/config"
	"github.com/san-kum/coulomb/internal/field"
	"github.com/san-kum/coulomb/internal/metrics"
	"github.com/san-kum/coulomb/internal/report"
	"github.com/san-kum/coulomb/internal/storage"
	"github.com/san-kum/coulomb/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	electrons  int
	seed       int64
	generator  string
	workers    int
	angleMode  string
	format     string
	summary    bool
	plot       bool
	save       bool
	verbose    bool
	profileOut string
	profileDir string
	// bench
	benchSizes   []int
	benchWorkers []int
	repeats      int
	useTUI       bool
)

// main builds the command tree and exits with status 1 on any error, after
// printing it to stderr. Nothing is written to stdout on failure.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, report.Errorf("%v", err))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "coulomb",
		Short:         "electron force field microbenchmark",
		Long:          "Computes the net Coulomb force on n electrons scattered over a 1m x 1m surface.",
		Args:          cobra.NoArgs,
		RunE:          runField,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	rootCmd.PersistentFlags().StringVar(&generator, "generator", config.DefaultGenerator, "random generator (libc, pcg)")
	rootCmd.PersistentFlags().StringVar(&angleMode, "angle-mode", config.DefaultAngleMode, "zero-Fx angle policy (reference, physical)")
	rootCmd.PersistentFlags().StringVar(&profileOut, "profile", "", "write a profile (cpu, mem)")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile-dir", ".", "directory for profile output")

	addRunFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute and print the force field (same as the bare command)",
		Args:  cobra.NoArgs,
		RunE:  runField,
	}
	addRunFlags(runCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the accumulator across electron and worker counts",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", nil, "electron counts (default from config)")
	benchCmd.Flags().IntSliceVar(&benchWorkers, "workers", []int{1}, "worker counts")
	benchCmd.Flags().IntVar(&repeats, "repeats", config.DefaultRepeats, "runs per case, fastest is kept")
	benchCmd.Flags().BoolVar(&useTUI, "tui", false, "show live progress")
	benchCmd.Flags().BoolVar(&plot, "plot", false, "plot throughput per case")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			return st.ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			return st.ExportCSV(cmd.OutOrStdout(), args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-10s n=%d workers=%d generator=%s angle=%s\n",
					name, p.Electrons, p.Workers, p.Generator, p.AngleMode)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, benchCmd, listCmd, exportJSONCmd, exportCSVCmd, presetsCmd)
	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&electrons, "electrons", "n", config.DefaultElectrons, "number of electrons")
	cmd.Flags().IntVarP(&workers, "workers", "w", config.DefaultWorkers, "accumulator workers (1 = sequential reference order)")
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultFormat, "output format (text, json, csv)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a run summary to stderr")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot the force direction histogram to stderr")
	cmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print phase timings to stderr")
}

// loadConfig layers defaults, the config file, the preset and finally any
// flag given explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("%w: unknown preset %q (available: %v)",
				field.ErrInvalidConfiguration, preset, config.ListPresets())
		}
		p.Format = cfg.Format
		p.DataDir = cfg.DataDir
		p.Bench = cfg.Bench
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("electrons") {
		cfg.Electrons = electrons
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("generator") {
		cfg.Generator = generator
	}
	if flags.Changed("angle-mode") {
		cfg.AngleMode = angleMode
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	// bench takes a list of worker counts instead.
	if cmd.Name() != "bench" && flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("sizes") {
		cfg.Bench.Sizes = benchSizes
	}
	if flags.Changed("repeats") {
		cfg.Bench.Repeats = repeats
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func startProfile() (interface{ Stop() }, error) {
	switch profileOut {
	case "":
		return nil, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.Quiet), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath(profileDir), profile.Quiet), nil
	default:
		return nil, fmt.Errorf("%w: unknown profile %q (want cpu or mem)", field.ErrInvalidConfiguration, profileOut)
	}
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	reporter, err := report.New(cfg.Format)
	if err != nil {
		return err
	}

	prof, err := startProfile()
	if err != nil {
		return err
	}

	sim := field.New()
	for _, m := range metrics.Defaults() {
		sim.AddMetric(m)
	}
	res, err := sim.Run(cmd.Context(), opts)
	if prof != nil {
		prof.Stop()
	}
	if err != nil {
		return err
	}

	if err := reporter.Report(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if verbose {
		fmt.Fprintf(stderr, "generate %v  accumulate %v  resolve %v  total %v\n",
			res.Timings.Generate, res.Timings.Accumulate, res.Timings.Resolve, res.Timings.Total())
	}
	if summary {
		if err := report.Summary(stderr, opts, res); err != nil {
			return err
		}
	}
	if plot {
		fmt.Fprintln(stderr, report.AngleHistogram(res.Surface, 36))
	}
	if save {
		runID, err := storage.New(cfg.DataDir).Save(opts, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "saved run %s\n", runID)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	sweep, err := bench.NewSweep(opts, cfg.Bench.Sizes, benchWorkers, cfg.Bench.Repeats)
	if err != nil {
		return err
	}

	prof, err := startProfile()
	if err != nil {
		return err
	}
	if prof != nil {
		defer prof.Stop()
	}

	out := cmd.OutOrStdout()
	var samples []bench.Sample
	if useTUI {
		samples, err = tui.RunBench(cmd.Context(), sweep)
	} else {
		fmt.Fprintf(out, "benchmarking %d cases, %d repeats each\n\n", len(sweep.Cases()), max(cfg.Bench.Repeats, 1))
		samples, err = sweep.Run(cmd.Context(), nil)
	}
	if err != nil {
		return err
	}

	if err := bench.Table(out, samples); err != nil {
		return err
	}
	if plot && len(samples) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, bench.Plot(samples))
	}
	return nil
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	return writeRuns(cmd.OutOrStdout(), runs)
}

func writeRuns(w io.Writer, runs []storage.RunMetadata) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no runs found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tELECTRONS\tPAIRS\tWORKERS\tGENERATOR\tACCUMULATE\tTIME")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%v\t%s\n",
			r.ID, r.Electrons, r.Pairs, max(r.Workers, 1), r.Generator,
			time.Duration(r.AccumulateNS), r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}
