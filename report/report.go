package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"paymentsengine/executor/types"
)

var header = []string{"client", "available", "held", "total", "locked"}

// Write renders accounts as CSV, one row per client in ascending client
// order. Amounts always carry four fractional digits.
func Write(w io.Writer, accounts []types.Account) error {
	sorted := slices.Clone(accounts)
	slices.SortFunc(sorted, func(a, b types.Account) int {
		return int(a.Client) - int(b.Client)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	for _, acc := range sorted {
		if err := cw.Write(row(acc)); err != nil {
			return fmt.Errorf("report: client %d: %w", acc.Client, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

func row(acc types.Account) []string {
	return []string{
		strconv.FormatUint(uint64(acc.Client), 10),
		acc.Available().Fixed(),
		acc.Held().Fixed(),
		acc.Total().Fixed(),
		strconv.FormatBool(acc.IsLocked()),
	}
}
