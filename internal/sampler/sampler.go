// Package sampler estimates the bingo probability by actually drawing
// fragments at random, and checks an estimate against a predicted value.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

// ErrInvalidTrials is returned when fewer than one trial is requested.
var ErrInvalidTrials = errors.New("trials must be a positive integer")

// DefaultConfidence is the coverage of the interval reported by Estimate.
const DefaultConfidence = 0.95

const cancelCheckEvery = 1024

// Estimate summarises a batch of random draws.
type Estimate struct {
	Trials int     `yaml:"trials"`
	Hits   int     `yaml:"hits"`
	P      float64 `yaml:"p"`
	StdErr float64 `yaml:"std_err"`
	Lower  float64 `yaml:"lower"`
	Upper  float64 `yaml:"upper"`
}

// Sampler draws uniform subsets of the fragment pool. It is not safe for
// concurrent use.
type Sampler struct {
	rng  *rand.Rand
	pool []int
}

// New creates a Sampler whose draws are fully determined by seed.
func New(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Draw picks q.Drawn distinct labels and returns them in ascending order.
func (s *Sampler) Draw(q puzzle.Query) ([]int, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	picked := slices.Clone(s.shuffleFront(q))
	slices.Sort(picked)
	return picked, nil
}

// shuffleFront runs a partial Fisher–Yates pass so the first q.Drawn slots of
// the pool hold a uniform random subset. The returned slice aliases s.pool.
func (s *Sampler) shuffleFront(q puzzle.Query) []int {
	n := q.PoolSize()
	if cap(s.pool) < n {
		s.pool = make([]int, n)
	}
	s.pool = s.pool[:n]
	for i := range s.pool {
		s.pool[i] = i
	}
	for i := 0; i < q.Drawn; i++ {
		j := i + s.rng.IntN(n-i)
		s.pool[i], s.pool[j] = s.pool[j], s.pool[i]
	}
	return s.pool[:q.Drawn]
}

// IsBingo reports whether subset holds every fragment of some picture. The
// subset does not need to be sorted.
func IsBingo(q puzzle.Query, subset []int) bool {
	counts := make([]int, q.Pictures)
	for _, label := range subset {
		p := q.PictureOf(label)
		counts[p]++
		if counts[p] == q.Fragments {
			return true
		}
	}
	return false
}

// Estimate draws trials subsets and reports the observed bingo rate with a
// normal-approximation interval at DefaultConfidence.
func (s *Sampler) Estimate(ctx context.Context, q puzzle.Query, trials int) (Estimate, error) {
	if err := q.Validate(); err != nil {
		return Estimate{}, err
	}
	if trials < 1 {
		return Estimate{}, fmt.Errorf("%w: got %d", ErrInvalidTrials, trials)
	}

	hits := 0
	for i := 0; i < trials; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Estimate{}, err
			}
		}
		if IsBingo(q, s.shuffleFront(q)) {
			hits++
		}
	}

	p := float64(hits) / float64(trials)
	stdErr := math.Sqrt(p * (1 - p) / float64(trials))
	z := distuv.UnitNormal.Quantile(1 - (1-DefaultConfidence)/2)

	return Estimate{
		Trials: trials,
		Hits:   hits,
		P:      p,
		StdErr: stdErr,
		Lower:  math.Max(0, p-z*stdErr),
		Upper:  math.Min(1, p+z*stdErr),
	}, nil
}

// PValue is the two-sided exact binomial p-value of observing est.Hits
// successes in est.Trials draws when the true probability is p.
func PValue(est Estimate, p float64) float64 {
	switch {
	case p <= 0:
		if est.Hits == 0 {
			return 1
		}
		return 0
	case p >= 1:
		if est.Hits == est.Trials {
			return 1
		}
		return 0
	}

	dist := stats.BinomialDist{N: est.Trials, P: p}
	h := float64(est.Hits)
	lower := dist.CDF(h)
	upper := 1 - dist.CDF(h-1)
	return math.Min(1, 2*math.Min(lower, upper))
}

// Consistent reports whether est is compatible with probability p at
// significance level alpha.
func Consistent(est Estimate, p, alpha float64) bool {
	return PValue(est, p) >= alpha
}
