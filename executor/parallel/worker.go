package parallel

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"paymentsengine/executor/serial"
	"paymentsengine/executor/types"
	"paymentsengine/metrics"
	"paymentsengine/transactions"
)

// worker drains a single source through a serial executor and produces a
// report for it.
type worker struct {
	exec *serial.Executor
}

type report struct {
	source  string
	summary types.Summary
	// err is set when the source stopped before io.EOF
	err error
}

func (r report) String() string {
	return fmt.Sprintf("report{source: %s, %s, err: %v}", r.source, r.summary, r.err)
}

func newWorker(engine types.TransactionExecutor, logger *zap.Logger, m *metrics.Metrics) worker {
	return worker{exec: serial.NewExecutor(engine, logger, m)}
}

func (w worker) execute(ctx context.Context, src transactions.Source) report {
	summary, err := w.exec.Execute(ctx, src)
	return report{source: src.Name(), summary: summary, err: err}
}
