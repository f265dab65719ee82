package application

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/fragment-bingo/internal/binomial"
	"github.com/eugenenazirov/fragment-bingo/internal/config"
	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

func TestNewInitializesDependencies(t *testing.T) {
	app, err := New(baseTestConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if app.table == nil || app.predictor == nil || app.enumerator == nil || app.harness == nil {
		t.Fatalf("expected table, predictor, enumerator, and harness to be initialized")
	}
	if app.table.Bound() != 50 {
		t.Fatalf("expected table bound 50, got %d", app.table.Bound())
	}
}

func TestNewReturnsErrorForInvalidBound(t *testing.T) {
	cfg := baseTestConfig()
	cfg.TableBound = 0

	if _, err := New(cfg, zaptest.NewLogger(t)); !errors.Is(err, binomial.ErrInvalidBound) {
		t.Fatalf("expected ErrInvalidBound, got %v", err)
	}
}

func TestNewReturnsErrorForInvalidCacheSize(t *testing.T) {
	cfg := baseTestConfig()
	cfg.CacheSize = 0

	if _, err := New(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for zero cache size")
	}
}

func TestPredictAndEnumerateAgree(t *testing.T) {
	app, err := New(baseTestConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	q := puzzle.Query{Pictures: 3, Fragments: 3, Drawn: 5}
	pred, err := app.Predict(q)
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if pred.Exact.Cmp(big.NewRat(5, 14)) != 0 {
		t.Fatalf("expected 5/14, got %s", pred.Exact.RatString())
	}

	res, err := app.Enumerate(q)
	if err != nil {
		t.Fatalf("Enumerate returned error: %v", err)
	}
	if res.Probability() != pred.P {
		t.Fatalf("expected enumeration %v to equal prediction %v", res.Probability(), pred.P)
	}
}

func TestPredictOutsideTable(t *testing.T) {
	app, err := New(baseTestConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := app.Predict(puzzle.Query{Pictures: 10, Fragments: 9, Drawn: 28}); !errors.Is(err, binomial.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestSweepUsesConfiguredBounds(t *testing.T) {
	app, err := New(baseTestConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	report, err := app.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if !report.OK() {
		t.Fatalf("unexpected mismatch: %s", report)
	}
	// a in [1,4), b in [1,3), k in [0, a*b]: (2+3) + (3+5) + (4+7).
	if report.Checked != 24 {
		t.Fatalf("expected 24 triples, got %d", report.Checked)
	}
}

func TestSampleIsConsistentWithPrediction(t *testing.T) {
	app, err := New(baseTestConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	res, err := app.Sample(context.Background(), puzzle.Query{Pictures: 3, Fragments: 2, Drawn: 6})
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	if res.Predicted != 1 || res.Estimate.P != 1 || !res.Consistent {
		t.Fatalf("expected a certain bingo, got %+v", res)
	}
}

func TestCurveAndTableRow(t *testing.T) {
	app, err := New(baseTestConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	points, err := app.Curve(2, 2)
	if err != nil {
		t.Fatalf("Curve returned error: %v", err)
	}
	if len(points) != 5 || points[2].P != 1.0/3.0 {
		t.Fatalf("unexpected curve: %+v", points)
	}

	row, err := app.TableRow(4)
	if err != nil {
		t.Fatalf("TableRow returned error: %v", err)
	}
	if len(row) != 5 || row[2].Int64() != 6 {
		t.Fatalf("unexpected row: %v", row)
	}
}

func baseTestConfig() config.Config {
	return config.Config{
		TableBound:       50,
		LogLevel:         "debug",
		CacheSize:        16,
		Tolerance:        1e-9,
		SweepMaxA:        4,
		SweepMaxB:        3,
		BelowPicture:     true,
		ProgressInterval: 10 * time.Millisecond,
		SampleTrials:     500,
		Seed:             7,
	}
}
