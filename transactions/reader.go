package transactions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"paymentsengine/amount"
	"paymentsengine/executor/types"
)

// Source yields transactions in input order.
type Source interface {
	// Next returns the next transaction, io.EOF once the input is exhausted,
	// or a *RowError for a single row that could not be decoded. Any other
	// error means the source cannot continue.
	Next() (types.Transaction, error)
	Name() string
}

var ErrMissingColumn = errors.New("missing column")

// RowError reports a malformed input row. Callers skip the row and go on.
type RowError struct {
	Source string
	Line   int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

type columns struct {
	kind, client, tx, amount int
}

// Reader decodes the "type,client,tx,amount" CSV format. Columns are located
// by header name; surrounding whitespace in any field is ignored.
type Reader struct {
	name  string
	csv   *csv.Reader
	cols  columns
	empty bool
	// headerErr is set when the header cannot be mapped; every row then
	// fails with it.
	headerErr error
}

var _ Source = &Reader{}

// NewReader reads the header row of r. A header that is malformed or lacks a
// required column does not fail here: each following row is reported as a
// *RowError instead. An entirely empty input yields a Reader with no rows.
// Only an I/O error while reading the header is returned.
func NewReader(name string, r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	reader := &Reader{name: name, csv: cr}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		reader.empty = true
		return reader, nil
	}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		reader.headerErr = fmt.Errorf("header: %w", err)
		return reader, nil
	}
	if err != nil {
		return nil, fmt.Errorf("transactions: %s: read header: %w", name, err)
	}

	cols, err := headerColumns(header)
	if err != nil {
		reader.headerErr = fmt.Errorf("header: %w", err)
		return reader, nil
	}
	reader.cols = cols
	return reader, nil
}

// HeaderErr reports why the header could not be used, if it could not.
func (r *Reader) HeaderErr() error {
	return r.headerErr
}

func headerColumns(header []string) (columns, error) {
	cols := columns{kind: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "type":
			cols.kind = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		}
	}

	required := []struct {
		name string
		idx  int
	}{{"type", cols.kind}, {"client", cols.client}, {"tx", cols.tx}}
	for _, col := range required {
		if col.idx < 0 {
			return cols, fmt.Errorf("%w %q", ErrMissingColumn, col.name)
		}
	}
	return cols, nil
}

func (r *Reader) Name() string {
	return r.name
}

func (r *Reader) Next() (types.Transaction, error) {
	if r.empty {
		return types.Transaction{}, io.EOF
	}

	record, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return types.Transaction{}, io.EOF
	}
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return types.Transaction{}, &RowError{Source: r.name, Line: parseErr.Line, Err: err}
		}
		return types.Transaction{}, fmt.Errorf("transactions: %s: %w", r.name, err)
	}

	line, _ := r.csv.FieldPos(0)
	if r.headerErr != nil {
		return types.Transaction{}, &RowError{Source: r.name, Line: line, Err: r.headerErr}
	}

	tx, err := decode(record, r.cols)
	if err != nil {
		return types.Transaction{}, &RowError{Source: r.name, Line: line, Err: err}
	}
	return tx, nil
}

func decode(record []string, cols columns) (types.Transaction, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	kind, err := types.ParseKind(field(cols.kind))
	if err != nil {
		return types.Transaction{}, err
	}
	client, err := strconv.ParseUint(field(cols.client), 10, 16)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("client: %w", err)
	}
	id, err := strconv.ParseUint(field(cols.tx), 10, 32)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("tx: %w", err)
	}

	tx := types.Transaction{
		ID:     types.TxID(id),
		Kind:   kind,
		Client: types.ClientID(client),
	}
	if !kind.Storable() {
		return tx, nil
	}

	raw := field(cols.amount)
	if raw == "" {
		return types.Transaction{}, fmt.Errorf("%w: tx %d", types.ErrMissingAmount, id)
	}
	amt, err := amount.Parse(raw)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("%w: tx %d: %w", types.ErrInvalidAmount, id, err)
	}
	tx.Amount = &amt
	return tx, nil
}
