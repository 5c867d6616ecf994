package types

import (
	"fmt"
	"strings"

	"paymentsengine/amount"
)

type ClientID uint16

type TxID uint32

type Kind int

const (
	Deposit Kind = iota
	Withdrawal
	Dispute
	Resolve
	Chargeback
)

var kindNames = [...]string{
	Deposit:    "deposit",
	Withdrawal: "withdrawal",
	Dispute:    "dispute",
	Resolve:    "resolve",
	Chargeback: "chargeback",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind matches s case-insensitively against the lowercase kind names.
func ParseKind(s string) (Kind, error) {
	lower := strings.ToLower(s)
	for k, name := range kindNames {
		if name == lower {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Storable reports whether transactions of this kind are kept for later
// dispute lookups.
func (k Kind) Storable() bool {
	return k == Deposit || k == Withdrawal
}

// Transaction is a single requested operation. For Deposit and Withdrawal,
// Amount must be set; Dispute, Resolve and Chargeback reference a stored
// transaction by ID and carry no amount.
type Transaction struct {
	ID       TxID
	Kind     Kind
	Client   ClientID
	Amount   *amount.Amount
	Disputed bool
}

func (tx *Transaction) MarkDisputed() {
	tx.Disputed = true
}

func (tx *Transaction) MarkResolved() {
	tx.Disputed = false
}

// MarkChargedBack clears the dispute flag. The owning account is locked by
// the caller, so the transaction cannot be disputed again.
func (tx *Transaction) MarkChargedBack() {
	tx.Disputed = false
}

func (tx Transaction) String() string {
	amt := "-"
	if tx.Amount != nil {
		amt = tx.Amount.String()
	}
	return fmt.Sprintf("Transaction{id:%d,kind:%s,client:%d,amount:%s,disputed:%t}",
		tx.ID, tx.Kind, tx.Client, amt, tx.Disputed)
}

// AccountStore owns the canonical account records keyed by client.
type AccountStore interface {
	// Account returns the record for id; absence is not an error.
	Account(id ClientID) (*Record[Account], bool)
	// Insert adds or replaces the record at account.Client.
	Insert(account Account) *Record[Account]
	// GetOrInsert returns the existing record for id, creating an unlocked
	// zero-balance account if none exists.
	GetOrInsert(id ClientID) *Record[Account]
	All() []*Record[Account]
}

// TransactionStore owns the stored (deposit and withdrawal) transactions keyed by ID.
type TransactionStore interface {
	Transaction(id TxID) (*Record[Transaction], bool)
	// Insert adds or replaces the record at tx.ID.
	Insert(tx Transaction) *Record[Transaction]
	All() []*Record[Transaction]
	Len() int
}

// TransactionExecutor applies a single transaction against the stores.
type TransactionExecutor interface {
	Apply(Transaction) error
}
