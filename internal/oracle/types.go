package oracle

import (
	"math/big"

	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

// Result counts the enumerated subsets and how many of them hold at least one
// complete picture.
type Result struct {
	Bingo uint64
	Total uint64
}

// Probability is Bingo/Total as a float.
func (r Result) Probability() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Bingo) / float64(r.Total)
}

// Rat is Bingo/Total as an exact fraction.
func (r Result) Rat() *big.Rat {
	if r.Total == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).SetFrac(
		new(big.Int).SetUint64(r.Bingo),
		new(big.Int).SetUint64(r.Total),
	)
}

// Enumerator describes a ground-truth calculator.
type Enumerator interface {
	Enumerate(q puzzle.Query) (Result, error)
}

// Probability runs e and returns the bingo ratio.
func Probability(e Enumerator, q puzzle.Query) (float64, error) {
	res, err := e.Enumerate(q)
	if err != nil {
		return 0, err
	}
	return res.Probability(), nil
}
