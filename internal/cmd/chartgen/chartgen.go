// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command chartgen renders the charts of an I/O benchmark report: one with
// every measurement and one restricted to the smallest block sizes.
package main

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/petenewcomb/iobench"
	"github.com/petenewcomb/iobench/internal/chart"
	"github.com/petenewcomb/iobench/internal/logging"
	"github.com/petenewcomb/iobench/internal/xcmd"
)

// Chart file basenames.
const (
	CompleteChart = "graph-complete"
	StartChart    = "graph-start"
)

// Cmd is the command line arguments.
type Cmd struct {
	// ConfigPath is the path to the optional configuration file.
	ConfigPath string
	// OutputDir overrides the chart directory.
	OutputDir string
	// Format overrides the chart format.
	Format string
	// Limit overrides the start chart's block size bound.
	Limit datasize.ByteSize
	// LogLevel overrides the logging level.
	LogLevel zapcore.Level
}

type runFunc func(cmd *cobra.Command, args *Cmd, input string) error

func newRootCmd(run runFunc) *cobra.Command {
	args := &Cmd{
		Limit:    DefaultConfig().StartLimit,
		LogLevel: DefaultConfig().Logging.Level,
	}

	rootCmd := &cobra.Command{
		Use:   "chartgen [flags] <metrics.csv>",
		Short: "Render buffered/unbuffered I/O benchmark charts",
		Long: "Reads an I/O benchmark report and writes " + CompleteChart + " (all block sizes) and " +
			StartChart + " (block sizes below the limit) to the report directory.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			// Arguments are valid; from here on failures are not usage errors.
			cmd.SilenceUsage = true
			return run(cmd, args, positional[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&args.ConfigPath, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVarP(&args.OutputDir, "output", "o", "", "Directory to write the charts to (default from config: report)")
	flags.StringVarP(&args.Format, "format", "f", "", "Chart format: svg, eps, pdf or tex (default from config: svg)")
	flags.Var(xcmd.ByteSize(&args.Limit), "limit", "Exclusive block size bound of the "+StartChart+" chart")
	flags.Var(xcmd.Level(&args.LogLevel), "log-level", "Logging level")

	return rootCmd
}

func main() {
	rootCmd := newRootCmd(run)
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// config resolves the effective configuration: defaults, then the config
// file, then any flags given explicitly.
func config(cmd *cobra.Command, args *Cmd) (*Config, error) {
	cfg := DefaultConfig()
	if args.ConfigPath != "" {
		var err error
		cfg, err = LoadConfig(args.ConfigPath)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Chart.Dir = args.OutputDir
	}
	if flags.Changed("format") {
		cfg.Chart.Format = args.Format
	}
	if flags.Changed("limit") {
		cfg.StartLimit = args.Limit
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = args.LogLevel
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args *Cmd, input string) error {
	cfg, err := config(cmd, args)
	if err != nil {
		return err
	}

	log, err := logging.Init(&cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	renderer, err := chart.NewRenderer(&cfg.Chart, chart.WithLog(log))
	if err != nil {
		return fmt.Errorf("failed to configure charts: %w", err)
	}

	ds, err := iobench.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	log.Infow("report loaded", "path", input, "measurements", ds.Len())

	charts := []struct {
		name string
		opts []chart.RenderOption
	}{
		{CompleteChart, nil},
		{StartChart, []chart.RenderOption{chart.WithLimit(cfg.StartLimit)}},
	}
	for _, c := range charts {
		path, err := renderer.Render(ds, c.name, c.opts...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
