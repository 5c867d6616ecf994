package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the maximum number of fractional digits an Amount carries.
const Precision = 4

var (
	ErrInvalid   = errors.New("amount: invalid literal")
	ErrPrecision = errors.New("amount: more than 4 decimal places")
	ErrOverflow  = errors.New("amount: overflow")
	ErrUnderflow = errors.New("amount: underflow")
)

// Max is the largest amount whose value scaled by 10^Precision still fits in
// an unsigned 128-bit integer.
var Max = Amount{d: decimal.NewFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)),
	-Precision,
)}

// Zero is the zero amount. The zero value of Amount is also zero.
var Zero = Amount{}

// Amount is a non-negative monetary value with at most Precision fractional
// digits. Arithmetic is exact and checked against Zero and Max.
type Amount struct {
	d decimal.Decimal
}

// Parse reads a plain decimal literal such as "12", "0.5" or "3.1415".
// Signs, exponents and empty integer or fractional parts are rejected.
func Parse(s string) (Amount, error) {
	whole, frac, hasPoint := strings.Cut(s, ".")
	if !isDigits(whole) || (hasPoint && !isDigits(frac)) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	if len(frac) > Precision {
		return Amount{}, fmt.Errorf("%w: %q", ErrPrecision, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	if d.GreaterThan(Max.d) {
		return Amount{}, fmt.Errorf("%w: %q exceeds %s", ErrOverflow, s, Max)
	}

	return Amount{d: d}, nil
}

// MustParse is like Parse but panics on error. Intended for literals in tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Add returns a+b, or ErrOverflow if the sum exceeds Max.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a.d.Add(b.d)
	if sum.GreaterThan(Max.d) {
		return a, fmt.Errorf("%w: %s + %s", ErrOverflow, a, b)
	}
	return Amount{d: sum}, nil
}

// Sub returns a-b, or ErrUnderflow if the difference would be negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.d.LessThan(b.d) {
		return a, fmt.Errorf("%w: %s - %s", ErrUnderflow, a, b)
	}
	return Amount{d: a.d.Sub(b.d)}, nil
}

func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// String renders the shortest exact form, e.g. "10.1" or "0".
func (a Amount) String() string {
	return a.d.String()
}

// Fixed renders the amount with exactly Precision fractional digits.
func (a Amount) Fixed() string {
	return a.d.StringFixed(Precision)
}
