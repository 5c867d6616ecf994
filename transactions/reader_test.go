package transactions

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymentsengine/amount"
	"paymentsengine/executor/types"
)

type result struct {
	txs    []types.Transaction
	errors []*RowError
}

func readAll(t *testing.T, input string) result {
	t.Helper()
	r, err := NewReader("test.csv", strings.NewReader(input))
	require.NoError(t, err)

	var res result
	for {
		tx, err := r.Next()
		if errors.Is(err, io.EOF) {
			return res
		}
		var rowErr *RowError
		if errors.As(err, &rowErr) {
			res.errors = append(res.errors, rowErr)
			continue
		}
		require.NoError(t, err)
		res.txs = append(res.txs, tx)
	}
}

// assertTx compares amounts by value; an empty amt means no amount.
func assertTx(t *testing.T, kind types.Kind, client types.ClientID, id types.TxID, amt string, got types.Transaction) {
	t.Helper()
	assert.Equal(t, kind, got.Kind)
	assert.Equal(t, client, got.Client)
	assert.Equal(t, id, got.ID)
	assert.False(t, got.Disputed)
	if amt == "" {
		assert.Nil(t, got.Amount)
		return
	}
	require.NotNil(t, got.Amount)
	assert.True(t, got.Amount.Equal(amount.MustParse(amt)), "amount: expected %s, got %s", amt, got.Amount)
}

func TestReaderDecodesAllKinds(t *testing.T) {
	res := readAll(t, `type,client,tx,amount
deposit,1,1,1.0
withdrawal,1,2,0.5
dispute,1,1,
resolve,1,1,
chargeback,1,1,
`)
	require.Empty(t, res.errors)
	require.Len(t, res.txs, 5)
	assertTx(t, types.Deposit, 1, 1, "1", res.txs[0])
	assertTx(t, types.Withdrawal, 1, 2, "0.5", res.txs[1])
	assertTx(t, types.Dispute, 1, 1, "", res.txs[2])
	assertTx(t, types.Resolve, 1, 1, "", res.txs[3])
	assertTx(t, types.Chargeback, 1, 1, "", res.txs[4])
}

func TestReaderWhitespace(t *testing.T) {
	res := readAll(t, "type, client, tx, amount\n  deposit ,  2 , 7 ,  3.1415 \n")
	require.Empty(t, res.errors)
	require.Len(t, res.txs, 1)
	assert.Equal(t, types.ClientID(2), res.txs[0].Client)
	assert.Equal(t, types.TxID(7), res.txs[0].ID)
	assert.Equal(t, "3.1415", res.txs[0].Amount.String())
}

func TestReaderKindIsCaseInsensitive(t *testing.T) {
	res := readAll(t, "type,client,tx,amount\nDeposit,1,1,1\nWITHDRAWAL,1,2,1\n")
	require.Empty(t, res.errors)
	require.Len(t, res.txs, 2)
	assert.Equal(t, types.Deposit, res.txs[0].Kind)
	assert.Equal(t, types.Withdrawal, res.txs[1].Kind)
}

func TestReaderDisputeRowsMayOmitAmountColumn(t *testing.T) {
	res := readAll(t, "type,client,tx,amount\ndispute,1,1\nresolve,1,1,5\n")
	require.Empty(t, res.errors)
	require.Len(t, res.txs, 2)
	assert.Nil(t, res.txs[0].Amount)
	assert.Nil(t, res.txs[1].Amount)
}

func TestReaderColumnOrderFromHeader(t *testing.T) {
	res := readAll(t, "amount,tx,client,type\n2.5,9,3,deposit\n")
	require.Empty(t, res.errors)
	require.Len(t, res.txs, 1)
	assertTx(t, types.Deposit, 3, 9, "2.5", res.txs[0])
}

func TestReaderSkipsMalformedRows(t *testing.T) {
	res := readAll(t, `type,client,tx,amount
deposit,1,1,1.00001
deposit,1,2,
transfer,1,3,1
deposit,70000,4,1
deposit,1,-5,1
deposit,1,6,-1
deposit,1,7,2.0
`)
	require.Len(t, res.txs, 1)
	assert.Equal(t, types.TxID(7), res.txs[0].ID)

	require.Len(t, res.errors, 6)
	assert.ErrorIs(t, res.errors[0], types.ErrInvalidAmount)
	assert.ErrorIs(t, res.errors[0], amount.ErrPrecision)
	assert.ErrorIs(t, res.errors[1], types.ErrMissingAmount)
	assert.ErrorIs(t, res.errors[2], types.ErrUnknownKind)
	assert.ErrorIs(t, res.errors[5], types.ErrInvalidAmount)

	lines := make([]int, len(res.errors))
	for i, e := range res.errors {
		lines[i] = e.Line
		assert.Equal(t, "test.csv", e.Source)
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7}, lines)
}

func TestReaderBadQuoting(t *testing.T) {
	res := readAll(t, "type,client,tx,amount\ndeposit,1,1,\"1\"x\ndeposit,1,2,1\n")
	require.Len(t, res.errors, 1)
	require.Len(t, res.txs, 1)
	assert.Equal(t, types.TxID(2), res.txs[0].ID)
}

func TestReaderMissingColumnSkipsEveryRow(t *testing.T) {
	r, err := NewReader("bad.csv", strings.NewReader("kind,client,tx,amount\ndeposit,1,1,1\ndeposit,1,2,1\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, r.HeaderErr(), ErrMissingColumn)
	assert.ErrorContains(t, r.HeaderErr(), `"type"`)

	var lines []int
	for {
		_, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var rowErr *RowError
		require.ErrorAs(t, err, &rowErr)
		assert.ErrorIs(t, rowErr, ErrMissingColumn)
		assert.Equal(t, "bad.csv", rowErr.Source)
		lines = append(lines, rowErr.Line)
	}
	assert.Equal(t, []int{2, 3}, lines)
}

func TestReaderMalformedHeaderSkipsEveryRow(t *testing.T) {
	res := readAll(t, "type,\"client,tx,amount\ndeposit,1,1,1\n")
	assert.Empty(t, res.txs)
}

func TestReaderGoodHeaderHasNoError(t *testing.T) {
	r, err := NewReader("ok.csv", strings.NewReader("type,client,tx\n"))
	require.NoError(t, err)
	assert.NoError(t, r.HeaderErr())
}

func TestReaderEmptyInput(t *testing.T) {
	res := readAll(t, "")
	assert.Empty(t, res.txs)
	assert.Empty(t, res.errors)

	res = readAll(t, "type,client,tx,amount\n")
	assert.Empty(t, res.txs)
}

func TestSlice(t *testing.T) {
	src := NewSlice("mem", types.Transaction{ID: 1}, types.Transaction{ID: 2})
	assert.Equal(t, "mem", src.Name())

	tx, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, types.TxID(1), tx.ID)
	tx, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, types.TxID(2), tx.ID)
	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}
