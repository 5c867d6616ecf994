package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymentsengine/amount"
)

func TestNewUnlockedAccount(t *testing.T) {
	acc := NewUnlockedAccount(7)
	assert.Equal(t, ClientID(7), acc.Client)
	assert.True(t, acc.Available().IsZero())
	assert.True(t, acc.Held().IsZero())
	assert.True(t, acc.Total().IsZero())
	assert.False(t, acc.IsLocked())
}

func TestAccountAddAvailable(t *testing.T) {
	acc := NewUnlockedAccount(1)
	require.NoError(t, acc.AddAvailable(amount.MustParse("1.5")))
	require.NoError(t, acc.AddAvailable(amount.MustParse("0.25")))
	assert.Equal(t, "1.75", acc.Available().String())
}

func TestAccountAddAvailableOverflow(t *testing.T) {
	acc := NewUnlockedAccount(1)
	require.NoError(t, acc.AddAvailable(amount.Max))

	err := acc.AddAvailable(amount.MustParse("0.0001"))
	assert.ErrorIs(t, err, ErrAvailableOverflow)
	assert.ErrorIs(t, err, amount.ErrOverflow)
	assert.True(t, acc.Available().Equal(amount.Max))
}

func TestAccountAddAvailableCountsHeld(t *testing.T) {
	acc := NewUnlockedAccount(1)
	require.NoError(t, acc.AddAvailable(amount.Max))
	require.NoError(t, acc.SubAvailable(amount.MustParse("1")))
	require.NoError(t, acc.AddHeld(amount.MustParse("1")))

	err := acc.AddAvailable(amount.MustParse("1"))
	assert.ErrorIs(t, err, ErrAvailableOverflow)
	assert.True(t, acc.Total().Equal(amount.Max))
}

func TestAccountSubAvailableUnderflow(t *testing.T) {
	acc := NewUnlockedAccount(1)
	require.NoError(t, acc.AddAvailable(amount.MustParse("10")))

	err := acc.SubAvailable(amount.MustParse("100"))
	assert.ErrorIs(t, err, ErrAvailableUnderflow)
	assert.Equal(t, "10", acc.Available().String())
}

func TestAccountHeld(t *testing.T) {
	acc := NewUnlockedAccount(1)
	require.NoError(t, acc.AddHeld(amount.MustParse("3")))
	require.NoError(t, acc.SubHeld(amount.MustParse("1")))
	assert.Equal(t, "2", acc.Held().String())

	err := acc.SubHeld(amount.MustParse("2.0001"))
	assert.ErrorIs(t, err, ErrHeldUnderflow)
	assert.Equal(t, "2", acc.Held().String())

	acc = NewUnlockedAccount(2)
	require.NoError(t, acc.AddHeld(amount.Max))
	assert.ErrorIs(t, acc.AddHeld(amount.MustParse("1")), ErrHeldOverflow)
}

func TestAccountTotal(t *testing.T) {
	acc := NewUnlockedAccount(1)
	require.NoError(t, acc.AddAvailable(amount.MustParse("1.5")))
	require.NoError(t, acc.AddHeld(amount.MustParse("2.25")))
	assert.Equal(t, "3.75", acc.Total().String())
}

func TestAccountSetLocked(t *testing.T) {
	acc := NewUnlockedAccount(1)
	acc.SetLocked(true)
	assert.True(t, acc.IsLocked())
}
