// Package oracle computes bingo probabilities by brute force: every k-subset
// of the fragment pool is generated and checked. The cost grows with
// C(a*b, k), so it is meant for small validation ranges only.
package oracle

import (
	"fmt"
	"math/big"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

type bruteForce struct{}

// New creates an Enumerator that walks every subset of the pool.
func New() Enumerator {
	return &bruteForce{}
}

func (e *bruteForce) Enumerate(q puzzle.Query) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}
	if q.Drawn == 0 {
		return Result{Total: 1}, nil
	}

	n := q.PoolSize()
	size := new(big.Int).Binomial(int64(n), int64(q.Drawn))
	if !size.IsInt64() {
		return Result{}, fmt.Errorf("%w: C(%d, %d) = %s", ErrTooLarge, n, q.Drawn, size)
	}

	gen := combin.NewCombinationGenerator(n, q.Drawn)
	subset := make([]int, q.Drawn)

	var res Result
	for gen.Next() {
		res.Total++
		if hasCompletePicture(q, gen.Combination(subset)) {
			res.Bingo++
		}
	}
	return res, nil
}

// hasCompletePicture scans an ascending subset. Because every picture owns a
// contiguous block of labels, its fragments sit next to each other in the
// sorted subset, so a run of Fragments labels from one picture means the
// picture is complete.
func hasCompletePicture(q puzzle.Query, subset []int) bool {
	picture, run := 0, 0
	for _, label := range subset {
		if p := q.PictureOf(label); p == picture {
			run++
		} else {
			picture = p
			run = 1
		}
		if run == q.Fragments {
			return true
		}
	}
	return false
}
