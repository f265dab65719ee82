// Package binomial precomputes exact binomial coefficients with Pascal's
// triangle. A Table is built once and never mutated afterwards, so any
// number of goroutines may read it without locking.
package binomial

import (
	"fmt"
	"math/big"
)

// DefaultBound is the number of rows built when no bound is configured.
// Every query evaluated against the table needs pictures*fragments < bound.
const DefaultBound = 100

// Table holds C(n, r) for 0 <= r <= n < Bound().
type Table struct {
	rows [][]*big.Int
}

// New builds the triangle for rows 0..bound-1.
func New(bound int) (*Table, error) {
	if bound < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBound, bound)
	}

	rows := make([][]*big.Int, bound)
	for n := 0; n < bound; n++ {
		row := make([]*big.Int, n+1)
		for r := 0; r <= n; r++ {
			if r == 0 || r == n {
				row[r] = big.NewInt(1)
				continue
			}
			row[r] = new(big.Int).Add(rows[n-1][r-1], rows[n-1][r])
		}
		rows[n] = row
	}

	return &Table{rows: rows}, nil
}

// Bound is the exclusive upper limit on row indexes.
func (t *Table) Bound() int {
	return len(t.rows)
}

// Contains reports whether C(n, r) is stored in the table.
func (t *Table) Contains(n, r int) bool {
	return n >= 0 && n < len(t.rows) && r >= 0 && r <= n
}

// At returns a copy of C(n, r). Entries outside the triangle are errors,
// never zero.
func (t *Table) At(n, r int) (*big.Int, error) {
	if !t.Contains(n, r) {
		return nil, fmt.Errorf("%w: C(%d, %d) with bound %d", ErrOutOfRange, n, r, len(t.rows))
	}
	return new(big.Int).Set(t.rows[n][r]), nil
}

// Row returns a copy of row n.
func (t *Table) Row(n int) ([]*big.Int, error) {
	if n < 0 || n >= len(t.rows) {
		return nil, fmt.Errorf("%w: row %d with bound %d", ErrOutOfRange, n, len(t.rows))
	}
	out := make([]*big.Int, len(t.rows[n]))
	for i, v := range t.rows[n] {
		out[i] = new(big.Int).Set(v)
	}
	return out, nil
}
