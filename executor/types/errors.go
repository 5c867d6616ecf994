package types

import "errors"

var (
	ErrUnknownKind        = errors.New("unknown transaction type")
	ErrMissingAmount      = errors.New("missing amount")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrAccountLocked      = errors.New("account locked")
	ErrTxNotFound         = errors.New("transaction not found")
	ErrTxNotDisputed      = errors.New("transaction not disputed")
	ErrTxAlreadyDisputed  = errors.New("transaction already disputed")
	ErrInvalidDispute     = errors.New("invalid dispute")
	ErrAvailableOverflow  = errors.New("max available overflow")
	ErrHeldOverflow       = errors.New("max held overflow")
	ErrAvailableUnderflow = errors.New("min available underflow")
	ErrHeldUnderflow      = errors.New("min held underflow")
)
