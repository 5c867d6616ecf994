package types

import (
	"fmt"

	"paymentsengine/amount"
)

// Account is a client's balance. Balances only change through the checked
// add/sub methods, which leave the account untouched on failure.
type Account struct {
	Client    ClientID
	available amount.Amount
	held      amount.Amount
	locked    bool
}

func NewUnlockedAccount(client ClientID) Account {
	return Account{Client: client}
}

func (a Account) Available() amount.Amount { return a.available }

func (a Account) Held() amount.Amount { return a.held }

// Total returns available + held. AddAvailable keeps the sum within
// amount.Max, and the other operations never raise it.
func (a Account) Total() amount.Amount {
	total, _ := a.available.Add(a.held)
	return total
}

func (a Account) IsLocked() bool { return a.locked }

func (a *Account) SetLocked(locked bool) { a.locked = locked }

func (a *Account) AddAvailable(amt amount.Amount) error {
	v, err := a.available.Add(amt)
	if err == nil {
		_, err = v.Add(a.held)
	}
	if err != nil {
		return fmt.Errorf("%w: client %d: %w", ErrAvailableOverflow, a.Client, err)
	}
	a.available = v
	return nil
}

func (a *Account) SubAvailable(amt amount.Amount) error {
	v, err := a.available.Sub(amt)
	if err != nil {
		return fmt.Errorf("%w: client %d: %w", ErrAvailableUnderflow, a.Client, err)
	}
	a.available = v
	return nil
}

func (a *Account) AddHeld(amt amount.Amount) error {
	v, err := a.held.Add(amt)
	if err != nil {
		return fmt.Errorf("%w: client %d: %w", ErrHeldOverflow, a.Client, err)
	}
	a.held = v
	return nil
}

func (a *Account) SubHeld(amt amount.Amount) error {
	v, err := a.held.Sub(amt)
	if err != nil {
		return fmt.Errorf("%w: client %d: %w", ErrHeldUnderflow, a.Client, err)
	}
	a.held = v
	return nil
}

func (a Account) String() string {
	return fmt.Sprintf("Account{client:%d,available:%s,held:%s,locked:%t}",
		a.Client, a.available, a.held, a.locked)
}
