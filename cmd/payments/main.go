package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"paymentsengine"
	"paymentsengine/config"
	"paymentsengine/logging"
	"paymentsengine/metrics"
	"paymentsengine/transactions"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "payments:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("payments", flag.ContinueOnError)
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", string(cfg.LogFormat), "log format (console, json)")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write metrics in text exposition format to this file")
	workers := fs.Int("workers", 0, "maximum input files processed at once (0 = all)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: payments [flags] transactions.csv [more.csv ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.LogFormat = logging.Format(*logFormat)
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no input files")
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var sources []transactions.Source
	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()

		src, err := transactions.NewReader(path, bufio.NewReader(f))
		if err != nil {
			return err
		}
		if err := src.HeaderErr(); err != nil {
			logger.Warn("unusable header, every row of this input will be skipped",
				zap.String("source", path),
				zap.Error(err),
			)
		}
		sources = append(sources, src)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := bufio.NewWriter(stdout)
	summary, runErr := paymentsengine.Run(ctx, paymentsengine.Options{
		Logger:  logger,
		Metrics: m,
		Workers: *workers,
	}, sources, out)
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Debug("summary", zap.Stringer("summary", summary))

	if cfg.MetricsFile != "" {
		if err := metrics.WriteFile(cfg.MetricsFile, reg); err != nil {
			logger.Error("metrics not written", zap.Error(err))
		}
	}
	return runErr
}
