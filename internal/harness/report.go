package harness

import (
	"fmt"

	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

// Mismatch records the first triple on which the two calculators disagreed.
type Mismatch struct {
	Query     puzzle.Query `yaml:"query"`
	Predicted float64      `yaml:"predicted"`
	Actual    float64      `yaml:"actual"`
	Delta     float64      `yaml:"delta"`
}

// Report is the outcome of a sweep. Mismatch is nil when every triple agreed.
type Report struct {
	Checked  int       `yaml:"checked"`
	Mismatch *Mismatch `yaml:"mismatch,omitempty"`
}

// OK reports whether the sweep finished without a mismatch.
func (r Report) OK() bool {
	return r.Mismatch == nil
}

// Err converts a failed report into an error wrapping ErrMismatch.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	m := r.Mismatch
	return fmt.Errorf("%w: %s predicted %.17g actual %.17g", ErrMismatch, m.Query, m.Predicted, m.Actual)
}

func (r Report) String() string {
	if r.OK() {
		return fmt.Sprintf("verified %d triples", r.Checked)
	}
	m := r.Mismatch
	return fmt.Sprintf("mismatch after %d triples at %s: predicted %.17g actual %.17g (delta %.3g)",
		r.Checked, m.Query, m.Predicted, m.Actual, m.Delta)
}
