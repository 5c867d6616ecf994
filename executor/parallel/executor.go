package parallel

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"paymentsengine/executor/types"
	"paymentsengine/metrics"
	"paymentsengine/transactions"
)

// Executor drains several sources at once against one shared engine. Each
// source gets its own worker, so rows of a source are applied in the order
// they were read; rows of different sources interleave freely.
type Executor struct {
	engine   types.TransactionExecutor
	logger   *zap.Logger
	metrics  *metrics.Metrics
	nWorkers int
}

// NewExecutor limits the number of sources processed at the same time to
// nWorkers. Zero or less means one worker per source.
func NewExecutor(engine types.TransactionExecutor, nWorkers int, logger *zap.Logger, m *metrics.Metrics) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{engine: engine, nWorkers: nWorkers, logger: logger, metrics: m}
}

// Execute returns the summary of all sources. A worker that stops on a read
// error cancels the others; the summary still counts what was done.
func (e *Executor) Execute(ctx context.Context, srcs []transactions.Source) (types.Summary, error) {
	g, ctx := errgroup.WithContext(ctx)
	if e.nWorkers > 0 {
		g.SetLimit(e.nWorkers)
	}

	reports := make([]report, len(srcs))
	for i, src := range srcs {
		w := newWorker(e.engine, e.logger, e.metrics)
		g.Go(func() error {
			reports[i] = w.execute(ctx, src)
			return reports[i].err
		})
	}
	err := g.Wait()

	var summary types.Summary
	for _, r := range reports {
		e.logger.Debug("source done", zap.Stringer("report", r))
		summary.Add(r.summary)
	}
	e.logger.Debug("sources drained",
		zap.Int("sources", len(srcs)),
		zap.Stringer("summary", summary),
	)
	return summary, err
}
