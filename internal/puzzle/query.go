package puzzle

import (
	"fmt"
	"math"
)

// Query describes one draw: Pictures pictures, each shattered into Fragments
// fragments, and Drawn fragments picked from the mixed pool without
// replacement.
//
// Fragments are labelled 0..Pictures*Fragments-1 and picture p owns the
// contiguous labels [p*Fragments, (p+1)*Fragments). Both the enumeration
// oracle and the sampler rely on this numbering.
type Query struct {
	Pictures  int `yaml:"pictures"`
	Fragments int `yaml:"fragments"`
	Drawn     int `yaml:"drawn"`
}

// New builds a Query and validates it.
func New(pictures, fragments, drawn int) (Query, error) {
	q := Query{Pictures: pictures, Fragments: fragments, Drawn: drawn}
	if err := q.Validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Validate reports whether the query can be evaluated.
func (q Query) Validate() error {
	if q.Pictures < 1 {
		return fmt.Errorf("%w: pictures must be >= 1, got %d", ErrInvalidParameter, q.Pictures)
	}
	if q.Fragments < 1 {
		return fmt.Errorf("%w: fragments must be >= 1, got %d", ErrInvalidParameter, q.Fragments)
	}
	if q.Pictures > math.MaxInt/q.Fragments {
		return fmt.Errorf("%w: pool of %d pictures x %d fragments overflows", ErrInvalidParameter, q.Pictures, q.Fragments)
	}
	if q.Drawn < 0 {
		return fmt.Errorf("%w: drawn must be >= 0, got %d", ErrInvalidParameter, q.Drawn)
	}
	if q.Drawn > q.PoolSize() {
		return fmt.Errorf("%w: drawn %d exceeds pool of %d fragments", ErrInvalidParameter, q.Drawn, q.PoolSize())
	}
	return nil
}

// PoolSize is the total number of fragments in the mixed pool.
func (q Query) PoolSize() int {
	return q.Pictures * q.Fragments
}

// MaxComplete is the largest number of pictures Drawn fragments can complete.
func (q Query) MaxComplete() int {
	if q.Fragments < 1 {
		return 0
	}
	return min(q.Drawn/q.Fragments, q.Pictures)
}

// PictureOf returns the picture that owns the fragment label.
func (q Query) PictureOf(label int) int {
	return label / q.Fragments
}

// PictureRange returns the half-open label range [first, end) owned by
// picture p.
func (q Query) PictureRange(p int) (first, end int) {
	return p * q.Fragments, (p + 1) * q.Fragments
}

func (q Query) String() string {
	return fmt.Sprintf("a=%d b=%d k=%d", q.Pictures, q.Fragments, q.Drawn)
}
