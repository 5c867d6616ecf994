package storage

import (
	"sync"

	"paymentsengine/executor/types"
)

// Accounts is an in-memory AccountStore. The map lock is held only for the
// lookup or insert itself; mutating an account goes through its record lock.
type Accounts struct {
	mu      sync.RWMutex
	records map[types.ClientID]*types.Record[types.Account]
}

var _ types.AccountStore = &Accounts{}

func NewAccounts() *Accounts {
	return &Accounts{records: make(map[types.ClientID]*types.Record[types.Account])}
}

func (s *Accounts) Account(id types.ClientID) (*types.Record[types.Account], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

func (s *Accounts) Insert(account types.Account) *types.Record[types.Account] {
	rec := types.NewRecord(account)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[account.Client] = rec
	return rec
}

func (s *Accounts) GetOrInsert(id types.ClientID) *types.Record[types.Account] {
	if rec, ok := s.Account(id); ok {
		return rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another caller may have created it between the read and write lock.
	if rec, ok := s.records[id]; ok {
		return rec
	}
	rec := types.NewRecord(types.NewUnlockedAccount(id))
	s.records[id] = rec
	return rec
}

// All returns the records present at the time of the call, in no particular order.
func (s *Accounts) All() []*types.Record[types.Account] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*types.Record[types.Account], 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out
}

// Transactions is an in-memory TransactionStore.
type Transactions struct {
	mu      sync.RWMutex
	records map[types.TxID]*types.Record[types.Transaction]
}

var _ types.TransactionStore = &Transactions{}

func NewTransactions() *Transactions {
	return &Transactions{records: make(map[types.TxID]*types.Record[types.Transaction])}
}

func (s *Transactions) Transaction(id types.TxID) (*types.Record[types.Transaction], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

func (s *Transactions) Insert(tx types.Transaction) *types.Record[types.Transaction] {
	rec := types.NewRecord(tx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[tx.ID] = rec
	return rec
}

func (s *Transactions) All() []*types.Record[types.Transaction] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*types.Record[types.Transaction], 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out
}

func (s *Transactions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
