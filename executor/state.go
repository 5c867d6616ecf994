package executor

import (
	"fmt"

	"paymentsengine/executor/types"
)

// Dispute, resolve and chargeback move a stored deposit through
// normal -> disputed -> normal (resolve) or -> charged back (account locked).
// Each of them locks the referenced transaction before the account.

func (e *Engine) referenced(tx types.Transaction) (*types.Record[types.Transaction], error) {
	rec, ok := e.txs.Transaction(tx.ID)
	if !ok {
		return nil, fmt.Errorf("%w: tx %d", types.ErrTxNotFound, tx.ID)
	}
	return rec, nil
}

// checkOwner treats a transaction owned by another client as not found.
func checkOwner(target *types.Transaction, tx types.Transaction) error {
	if target.Client != tx.Client {
		return fmt.Errorf("%w: tx %d belongs to client %d, not %d",
			types.ErrTxNotFound, target.ID, target.Client, tx.Client)
	}
	return nil
}

func (e *Engine) dispute(accountRec *types.Record[types.Account], tx types.Transaction) error {
	targetRec, err := e.referenced(tx)
	if err != nil {
		return err
	}
	target := targetRec.Lock()
	defer targetRec.Unlock()
	if err := checkOwner(target, tx); err != nil {
		return err
	}

	account := accountRec.Lock()
	defer accountRec.Unlock()

	if account.IsLocked() {
		return lockedError(account)
	}
	if target.Kind != types.Deposit {
		return fmt.Errorf("%w: tx %d is a %s", types.ErrInvalidDispute, target.ID, target.Kind)
	}
	if target.Disputed {
		return fmt.Errorf("%w: tx %d", types.ErrTxAlreadyDisputed, target.ID)
	}
	amt, err := requireAmount(*target)
	if err != nil {
		return err
	}

	if err := account.SubAvailable(amt); err != nil {
		return err
	}
	// available + held <= Max, so moving amt into held cannot overflow.
	if err := account.AddHeld(amt); err != nil {
		return err
	}
	target.MarkDisputed()
	return nil
}

func (e *Engine) resolve(accountRec *types.Record[types.Account], tx types.Transaction) error {
	targetRec, err := e.referenced(tx)
	if err != nil {
		return err
	}
	target := targetRec.Lock()
	defer targetRec.Unlock()
	if err := checkOwner(target, tx); err != nil {
		return err
	}
	if !target.Disputed {
		return fmt.Errorf("%w: tx %d", types.ErrTxNotDisputed, target.ID)
	}

	account := accountRec.Lock()
	defer accountRec.Unlock()

	if account.IsLocked() {
		return lockedError(account)
	}
	amt, err := requireAmount(*target)
	if err != nil {
		return err
	}

	if err := account.SubHeld(amt); err != nil {
		return err
	}
	// available + held <= Max, so moving amt back to available cannot overflow.
	if err := account.AddAvailable(amt); err != nil {
		return err
	}
	target.MarkResolved()
	return nil
}

func (e *Engine) chargeback(accountRec *types.Record[types.Account], tx types.Transaction) error {
	targetRec, err := e.referenced(tx)
	if err != nil {
		return err
	}
	target := targetRec.Lock()
	defer targetRec.Unlock()
	if err := checkOwner(target, tx); err != nil {
		return err
	}
	if !target.Disputed {
		return fmt.Errorf("%w: tx %d", types.ErrTxNotDisputed, target.ID)
	}

	account := accountRec.Lock()
	defer accountRec.Unlock()

	if account.IsLocked() {
		return lockedError(account)
	}
	amt, err := requireAmount(*target)
	if err != nil {
		return err
	}

	if err := account.SubHeld(amt); err != nil {
		return err
	}
	account.SetLocked(true)
	target.MarkChargedBack()
	return nil
}
