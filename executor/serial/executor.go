package serial

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"paymentsengine/executor/types"
	"paymentsengine/metrics"
	"paymentsengine/transactions"
)

// Executor feeds one source to the engine in order. Failed transactions and
// malformed rows are logged and skipped.
type Executor struct {
	engine  types.TransactionExecutor
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewExecutor(engine types.TransactionExecutor, logger *zap.Logger, m *metrics.Metrics) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{engine: engine, logger: logger, metrics: m}
}

func (e *Executor) Execute(ctx context.Context, src transactions.Source) (types.Summary, error) {
	var summary types.Summary
	logger := e.logger.With(zap.String("source", src.Name()))

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		tx, err := src.Next()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}

		var rowErr *transactions.RowError
		if errors.As(err, &rowErr) {
			summary.Malformed++
			e.metrics.MalformedRow()
			logger.Warn("skipping malformed row",
				zap.Int("line", rowErr.Line),
				zap.Error(rowErr.Err),
			)
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("serial: %s: %w", src.Name(), err)
		}

		if err := e.engine.Apply(tx); err != nil {
			summary.Failed++
			logger.Warn("skipping failed transaction",
				zap.Uint16("client", uint16(tx.Client)),
				zap.Uint32("tx", uint32(tx.ID)),
				zap.Stringer("kind", tx.Kind),
				zap.Error(err),
			)
			continue
		}
		summary.Applied++
	}
}
