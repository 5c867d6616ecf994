package paymentsengine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"paymentsengine/executor"
	"paymentsengine/executor/parallel"
	"paymentsengine/executor/serial"
	"paymentsengine/executor/types"
	"paymentsengine/metrics"
	"paymentsengine/report"
	"paymentsengine/storage"
	"paymentsengine/transactions"
)

type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Workers caps how many sources are drained at once; zero means all.
	Workers int
}

// Run applies every source to a fresh set of accounts and writes the final
// account report to out. One source is processed serially; several are
// processed concurrently, each in its own order. The report is written even
// when the run stopped early, and the error is returned alongside it.
func Run(ctx context.Context, opts Options, sources []transactions.Source, out io.Writer) (types.Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	txs := storage.NewTransactions()
	engine := executor.New(storage.NewAccounts(), txs,
		executor.WithLogger(logger),
		executor.WithMetrics(opts.Metrics),
	)

	var (
		summary types.Summary
		runErr  error
	)
	switch len(sources) {
	case 0:
	case 1:
		summary, runErr = serial.NewExecutor(engine, logger, opts.Metrics).Execute(ctx, sources[0])
	default:
		summary, runErr = parallel.NewExecutor(engine, opts.Workers, logger, opts.Metrics).Execute(ctx, sources)
	}

	accounts := engine.Accounts()
	locked := 0
	for _, acc := range accounts {
		if acc.IsLocked() {
			locked++
		}
	}
	opts.Metrics.SetAccounts(len(accounts), locked)

	logger.Info("run finished",
		zap.Int("sources", len(sources)),
		zap.Int("accounts", len(accounts)),
		zap.Int("transactions", txs.Len()),
		zap.Int("applied", summary.Applied),
		zap.Int("failed", summary.Failed),
		zap.Int("malformed", summary.Malformed),
	)

	if err := report.Write(out, accounts); err != nil {
		return summary, errors.Join(runErr, fmt.Errorf("paymentsengine: %w", err))
	}
	return summary, runErr
}
