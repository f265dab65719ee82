// Package harness cross-checks the closed-form predictor against brute-force
// enumeration over a sweep of small parameter triples.
package harness

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eugenenazirov/fragment-bingo/internal/oracle"
	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

const (
	// DefaultTolerance is the largest absolute difference treated as agreement.
	DefaultTolerance = 1e-9
	// DefaultProgressInterval throttles the progress log line.
	DefaultProgressInterval = 2 * time.Second
)

// Predictor is the calculator under test.
type Predictor interface {
	Predict(q puzzle.Query) (float64, error)
}

// Harness drives a Predictor and an oracle.Enumerator over the same triples.
type Harness struct {
	predictor  Predictor
	enumerator oracle.Enumerator

	tolerance        float64
	belowPicture     bool
	progressInterval time.Duration
	logger           *zap.Logger
}

// Option configures Harness behaviour.
type Option func(*Harness)

// WithTolerance sets the agreement tolerance. Zero demands exact equality.
func WithTolerance(tolerance float64) Option {
	return func(h *Harness) {
		h.tolerance = tolerance
	}
}

// WithBelowPicture also checks draws smaller than one picture (k < b), where
// both sides must report zero.
func WithBelowPicture(enabled bool) Option {
	return func(h *Harness) {
		h.belowPicture = enabled
	}
}

// WithLogger attaches a logger for per-triple and progress diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithProgressInterval sets the minimum gap between progress log lines. A
// non-positive interval logs every triple.
func WithProgressInterval(interval time.Duration) Option {
	return func(h *Harness) {
		h.progressInterval = interval
	}
}

// New constructs a Harness.
func New(pred Predictor, enum oracle.Enumerator, opts ...Option) *Harness {
	h := &Harness{
		predictor:        pred,
		enumerator:       enum,
		tolerance:        DefaultTolerance,
		progressInterval: DefaultProgressInterval,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run sweeps a in [1, maxA), b in [1, maxB) and k in [b, a*b] (or [0, a*b]
// with WithBelowPicture). It stops at the first mismatch and returns it in
// the report; errors from either calculator or from ctx abort the sweep.
func (h *Harness) Run(ctx context.Context, maxA, maxB int) (Report, error) {
	if maxA < 1 || maxB < 1 {
		return Report{}, fmt.Errorf("%w: max a %d, max b %d", ErrInvalidRange, maxA, maxB)
	}

	progress := &rate.Sometimes{Interval: h.progressInterval}
	if h.progressInterval <= 0 {
		progress = &rate.Sometimes{Every: 1}
	}
	var report Report

	for a := 1; a < maxA; a++ {
		for b := 1; b < maxB; b++ {
			firstK := b
			if h.belowPicture {
				firstK = 0
			}
			for k := firstK; k <= a*b; k++ {
				if err := ctx.Err(); err != nil {
					return report, err
				}

				q := puzzle.Query{Pictures: a, Fragments: b, Drawn: k}
				mismatch, err := h.check(q)
				if err != nil {
					return report, fmt.Errorf("check %s: %w", q, err)
				}
				report.Checked++

				if mismatch != nil {
					report.Mismatch = mismatch
					h.logger.Warn("sweep mismatch",
						zap.Stringer("query", q),
						zap.Float64("predicted", mismatch.Predicted),
						zap.Float64("actual", mismatch.Actual),
						zap.Float64("delta", mismatch.Delta),
						zap.Int("checked", report.Checked),
					)
					return report, nil
				}

				progress.Do(func() {
					h.logger.Info("sweep progress",
						zap.Stringer("query", q),
						zap.Int("checked", report.Checked),
					)
				})
			}
		}
	}

	h.logger.Info("sweep finished", zap.Int("checked", report.Checked))
	return report, nil
}

func (h *Harness) check(q puzzle.Query) (*Mismatch, error) {
	predicted, err := h.predictor.Predict(q)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	actual, err := oracle.Probability(h.enumerator, q)
	if err != nil {
		return nil, fmt.Errorf("enumerate: %w", err)
	}

	delta := math.Abs(predicted - actual)
	h.logger.Debug("triple checked",
		zap.Stringer("query", q),
		zap.Float64("predicted", predicted),
		zap.Float64("actual", actual),
	)
	if delta <= h.tolerance {
		return nil, nil
	}
	return &Mismatch{Query: q, Predicted: predicted, Actual: actual, Delta: delta}, nil
}
