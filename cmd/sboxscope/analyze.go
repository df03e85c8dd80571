package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sboxscope/sboxscope/internal/analyzer"
	"github.com/sboxscope/sboxscope/internal/config"
	"github.com/sboxscope/sboxscope/internal/loader"
	"github.com/sboxscope/sboxscope/internal/report"
	"github.com/sboxscope/sboxscope/internal/ui"
)

type analyzeFlags struct {
	builtinName string
	format      string
	outputFile  string
	configFile  string
	template    string
	workers     int
	sequential  bool
	extended    bool
	noReference bool
	tui         bool
	verbose     bool
	inputFormat string
	namePath    string
	sboxPath    string
}

func newAnalyzeCmd() *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [FILE|-]",
		Short: "Compute every metric of an S-box and print a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.builtinName, "builtin", "b", "", "Analyze a built-in S-box (aes, aes-inv, inversion, identity)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Report format: "+strings.Join(report.NewManager().Formats(), ", "))
	cmd.Flags().StringVar(&f.template, "template", "", "html/template file used for -f html")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to config file (YAML)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Worker pool size (0 = one per CPU)")
	cmd.Flags().BoolVar(&f.sequential, "sequential", false, "Run calculators one after another")
	cmd.Flags().BoolVar(&f.extended, "extended", false, "Also compute SAC matrix, BIC-NL average, LAP bias and correlation immunity")
	cmd.Flags().BoolVar(&f.noReference, "no-reference", false, "Do not compare against reference values")
	cmd.Flags().BoolVar(&f.tui, "tui", false, "Show live progress in a terminal UI")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "Input format: auto, json, yaml, csv")
	cmd.Flags().StringVar(&f.namePath, "name-path", "", "gjson path of the name in JSON input")
	cmd.Flags().StringVar(&f.sboxPath, "sbox-path", "", "gjson path of the table in JSON input")

	return cmd
}

// loadConfig reads the optional config file and applies explicitly set flags on top
func (f *analyzeFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configFile != "" {
		var err error
		if cfg, err = config.Load(f.configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
	if flags.Changed("output") {
		cfg.Output.File = f.outputFile
	}
	if flags.Changed("template") {
		cfg.Output.Template = f.template
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = f.workers
	}
	if flags.Changed("sequential") {
		cfg.Analysis.Parallel = !f.sequential
	}
	if flags.Changed("extended") {
		cfg.Analysis.Extended = f.extended
	}
	if flags.Changed("no-reference") {
		cfg.Reference.Enabled = !f.noReference
	}
	if flags.Changed("tui") {
		cfg.Output.TUI = f.tui
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = f.verbose
	}
	if flags.Changed("input-format") {
		cfg.Input.Format = f.inputFormat
	}
	if flags.Changed("name-path") {
		cfg.Input.NamePath = f.namePath
	}
	if flags.Changed("sbox-path") {
		cfg.Input.SBoxPath = f.sboxPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string, f *analyzeFlags) error {
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	in, err := readInput(cmd, args, f.builtinName, loader.Options{
		Format:   loader.Format(cfg.Input.Format),
		NamePath: cfg.Input.NamePath,
		SBoxPath: cfg.Input.SBoxPath,
	})
	if err != nil {
		return err
	}
	logger.Debug("input loaded", zap.String("name", in.Name))

	var expectations []report.Expectation
	if cfg.Reference.Enabled {
		expectations = report.DefaultExpectations()
		if len(cfg.Reference.Values) > 0 {
			if expectations, err = report.ExpectationsFrom(cfg.Reference.Values, cfg.Reference.Tolerance); err != nil {
				return err
			}
		}
	}

	opts := analyzer.Options{
		Workers:  cfg.Analysis.Workers,
		Parallel: cfg.Analysis.Parallel,
		Extended: cfg.Analysis.Extended,
		Logger:   logger,
	}

	var res *analyzer.Result
	if cfg.Output.TUI {
		res, err = analyzeWithDashboard(in, opts)
	} else {
		res, err = analyzer.New(opts).Analyze(in.Name, in.SBox)
	}
	if err != nil {
		return err
	}

	r := report.FromResult(res, expectations)
	manager := report.NewManager()
	if cfg.Output.Template != "" {
		data, err := os.ReadFile(cfg.Output.Template)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		gen, err := report.CustomHTMLGenerator(string(data))
		if err != nil {
			return err
		}
		manager.RegisterGenerator("html", gen)
	}

	if cfg.Output.File != "" {
		if err := manager.WriteFile(r, cfg.Output.Format, cfg.Output.File); err != nil {
			return err
		}
		logger.Info("report written", zap.String("path", cfg.Output.File), zap.String("format", cfg.Output.Format))
		return nil
	}
	return manager.WriteToWriter(r, cfg.Output.Format, cmd.OutOrStdout())
}

// analyzeWithDashboard runs the analysis behind the live dashboard.
// Quitting the dashboard early still waits for the analysis to return.
func analyzeWithDashboard(in *loader.Input, opts analyzer.Options) (*analyzer.Result, error) {
	dash := ui.NewDashboard(in.Name, analyzer.New(opts).Tasks())

	var (
		res    *analyzer.Result
		runErr error
	)
	done := make(chan struct{})

	err := ui.Run(dash, func(send func(tea.Msg)) {
		defer close(done)
		o := opts
		o.OnProgress = func(ev analyzer.Event) {
			send(ui.MetricDoneMsg{Metric: ev.Metric, Elapsed: ev.Elapsed})
		}
		res, runErr = analyzer.New(o).Analyze(in.Name, in.SBox)
		send(ui.FinishedMsg{Err: runErr})
	})
	<-done

	if err != nil {
		return nil, fmt.Errorf("dashboard failed: %w", err)
	}
	return res, runErr
}
