// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command iobench measures buffered and unbuffered file I/O across block
// sizes and writes the report consumed by chartgen.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/petenewcomb/iobench/internal/bench"
	"github.com/petenewcomb/iobench/internal/logging"
	"github.com/petenewcomb/iobench/internal/xcmd"
)

// Cmd is the command line arguments.
type Cmd struct {
	// FSBlockSize is the block size of the file system under test.
	FSBlockSize int
	// Size is the amount of data written and read per run.
	Size datasize.ByteSize
	// ReportDir receives the metrics and size log.
	ReportDir string
	// WorkDir holds the test data files. When empty a temporary directory is
	// used and removed afterwards.
	WorkDir string
	// LogLevel is the logging level.
	LogLevel zapcore.Level
}

type runFunc func(ctx context.Context, args *Cmd) error

func newRootCmd(run runFunc) *cobra.Command {
	args := &Cmd{
		Size:      bench.DefaultFileSize,
		ReportDir: "report",
		LogLevel:  zapcore.InfoLevel,
	}

	rootCmd := &cobra.Command{
		Use:           "iobench [flags] <fs-block-size>",
		Short:         "Benchmark buffered and unbuffered file I/O",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			n, err := strconv.Atoi(positional[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid file system block size %q", positional[0])
			}
			args.FSBlockSize = n

			cmd.SilenceUsage = true
			return run(cmd.Context(), args)
		},
	}

	flags := rootCmd.Flags()
	flags.Var(xcmd.ByteSize(&args.Size), "size", "Amount of data written and read per run")
	flags.StringVar(&args.ReportDir, "report-dir", args.ReportDir, "Directory receiving "+bench.MetricsFile+" and "+bench.SizeLogFile)
	flags.StringVar(&args.WorkDir, "work-dir", "", "Directory for test data files (default a temporary directory)")
	flags.Var(xcmd.Level(&args.LogLevel), "log-level", "Logging level")

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(run)
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args *Cmd) error {
	log, err := logging.Init(&logging.Config{Level: args.LogLevel})
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := os.MkdirAll(args.ReportDir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := bench.WriteSizeLog(filepath.Join(args.ReportDir, bench.SizeLogFile), args.Size); err != nil {
		return fmt.Errorf("failed to write size log: %w", err)
	}

	workDir := args.WorkDir
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "iobench")
		if err != nil {
			return err
		}
		defer os.RemoveAll(workDir)
	} else if err := os.MkdirAll(workDir, 0755); err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}

	metricsPath := filepath.Join(args.ReportDir, bench.MetricsFile)
	f, err := os.Create(metricsPath)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer f.Close()

	logger, err := bench.NewCSVLogger(f)
	if err != nil {
		return fmt.Errorf("failed to write metrics header: %w", err)
	}

	b := bench.New(workDir, args.Size, bench.WithLog(log))
	if err := b.Run(ctx, args.FSBlockSize, logger); err != nil {
		return err
	}
	log.Infow("benchmark complete", "metrics", metricsPath)
	return f.Close()
}
