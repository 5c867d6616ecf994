package executor

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"paymentsengine/amount"
	"paymentsengine/executor/types"
	"paymentsengine/metrics"
)

// Engine applies transactions to the account and transaction stores it is
// given. Apply is safe for concurrent use; records touched by one call are
// locked transaction first, account second.
type Engine struct {
	accounts types.AccountStore
	txs      types.TransactionStore
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

var _ types.TransactionExecutor = &Engine{}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func New(accounts types.AccountStore, txs types.TransactionStore, opts ...Option) *Engine {
	e := &Engine{
		accounts: accounts,
		txs:      txs,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply runs tx through the state machine. Deposits and withdrawals are
// stored afterwards whether or not they succeeded, so a rejected deposit can
// still be the target of a later dispute.
func (e *Engine) Apply(tx types.Transaction) error {
	err := e.apply(tx)

	if tx.Kind.Storable() {
		tx.Disputed = false
		e.txs.Insert(tx)
	}

	if err != nil {
		e.metrics.Transaction(tx.Kind.String(), metrics.OutcomeFailed)
		return err
	}
	e.metrics.Transaction(tx.Kind.String(), metrics.OutcomeApplied)
	e.logger.Debug("transaction applied",
		zap.Uint16("client", uint16(tx.Client)),
		zap.Uint32("tx", uint32(tx.ID)),
		zap.Stringer("kind", tx.Kind),
	)
	return nil
}

func (e *Engine) apply(tx types.Transaction) error {
	account := e.accounts.GetOrInsert(tx.Client)

	switch tx.Kind {
	case types.Deposit:
		return e.deposit(account, tx)
	case types.Withdrawal:
		return e.withdraw(account, tx)
	case types.Dispute:
		return e.dispute(account, tx)
	case types.Resolve:
		return e.resolve(account, tx)
	case types.Chargeback:
		return e.chargeback(account, tx)
	default:
		return fmt.Errorf("%w: %s", types.ErrUnknownKind, tx.Kind)
	}
}

func (e *Engine) deposit(rec *types.Record[types.Account], tx types.Transaction) error {
	account := rec.Lock()
	defer rec.Unlock()

	if account.IsLocked() {
		return lockedError(account)
	}
	amt, err := requireAmount(tx)
	if err != nil {
		return err
	}
	return account.AddAvailable(amt)
}

func (e *Engine) withdraw(rec *types.Record[types.Account], tx types.Transaction) error {
	account := rec.Lock()
	defer rec.Unlock()

	if account.IsLocked() {
		return lockedError(account)
	}
	amt, err := requireAmount(tx)
	if err != nil {
		return err
	}
	return account.SubAvailable(amt)
}

// Accounts returns a snapshot of every account, ordered by client.
func (e *Engine) Accounts() []types.Account {
	records := e.accounts.All()
	out := make([]types.Account, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Client < out[j].Client
	})
	return out
}

// Transaction returns a snapshot of the stored transaction with the given id.
func (e *Engine) Transaction(id types.TxID) (types.Transaction, bool) {
	rec, ok := e.txs.Transaction(id)
	if !ok {
		return types.Transaction{}, false
	}
	return rec.Snapshot(), true
}

func requireAmount(tx types.Transaction) (amount.Amount, error) {
	if tx.Amount == nil {
		return amount.Amount{}, fmt.Errorf("%w: tx %d", types.ErrMissingAmount, tx.ID)
	}
	return *tx.Amount, nil
}

func lockedError(account *types.Account) error {
	return fmt.Errorf("%w: client %d", types.ErrAccountLocked, account.Client)
}
