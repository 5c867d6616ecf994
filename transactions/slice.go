package transactions

import (
	"io"

	"paymentsengine/executor/types"
)

// Slice is a Source over transactions already in memory.
type Slice struct {
	name string
	txs  []types.Transaction
}

var _ Source = &Slice{}

func NewSlice(name string, txs ...types.Transaction) *Slice {
	return &Slice{name: name, txs: txs}
}

func (s *Slice) Name() string {
	return s.name
}

func (s *Slice) Next() (types.Transaction, error) {
	if len(s.txs) == 0 {
		return types.Transaction{}, io.EOF
	}
	tx := s.txs[0]
	s.txs = s.txs[1:]
	return tx, nil
}
