// Package predictor evaluates the bingo probability in closed form by
// inclusion–exclusion over the number of complete pictures:
//
//	P = Σ_{i=1}^{⌊k/b⌋} (-1)^{i+1} C(a,i) C(ab-ib, k-ib) / C(ab,k)
//
// All arithmetic is exact; the float result is rounded once at the end.
package predictor

import (
	"fmt"
	"math/big"

	"github.com/eugenenazirov/fragment-bingo/internal/binomial"
	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

// Predictor reads coefficients from a shared, immutable table.
type Predictor struct {
	table *binomial.Table
}

// Point is one sample of the probability curve.
type Point struct {
	Drawn int     `yaml:"drawn"`
	P     float64 `yaml:"p"`
}

// New creates a Predictor backed by table.
func New(table *binomial.Table) *Predictor {
	return &Predictor{table: table}
}

// Predict returns the probability that q's draw completes at least one picture.
func (p *Predictor) Predict(q puzzle.Query) (float64, error) {
	r, err := p.PredictRat(q)
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}

// PredictRat is Predict without rounding.
func (p *Predictor) PredictRat(q puzzle.Query) (*big.Rat, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	pool := q.PoolSize()
	if pool >= p.table.Bound() {
		return nil, fmt.Errorf("%w: pool of %d fragments needs a table bound above %d", binomial.ErrOutOfRange, pool, p.table.Bound())
	}

	sum := new(big.Int)
	term := new(big.Int)
	for i := 1; i <= q.MaxComplete(); i++ {
		ways, err := p.lookup(q.Pictures, i)
		if err != nil {
			return nil, err
		}
		rest, err := p.lookup(pool-i*q.Fragments, q.Drawn-i*q.Fragments)
		if err != nil {
			return nil, err
		}
		term.Mul(ways, rest)
		if i%2 == 1 {
			sum.Add(sum, term)
		} else {
			sum.Sub(sum, term)
		}
	}

	total, err := p.table.At(pool, q.Drawn)
	if err != nil {
		return nil, err
	}
	return new(big.Rat).SetFrac(sum, total), nil
}

// lookup masks coefficients that are structurally zero so the strict table
// is only asked for entries inside the triangle.
func (p *Predictor) lookup(n, r int) (*big.Int, error) {
	if r < 0 || r > n {
		return new(big.Int), nil
	}
	return p.table.At(n, r)
}

// Curve evaluates the probability for every draw size 0..a*b.
func (p *Predictor) Curve(pictures, fragments int) ([]Point, error) {
	if _, err := puzzle.New(pictures, fragments, 0); err != nil {
		return nil, err
	}
	pool := pictures * fragments
	points := make([]Point, 0, pool+1)
	for k := 0; k <= pool; k++ {
		v, err := p.Predict(puzzle.Query{Pictures: pictures, Fragments: fragments, Drawn: k})
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Drawn: k, P: v})
	}
	return points, nil
}
