package application

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/eugenenazirov/fragment-bingo/internal/binomial"
	"github.com/eugenenazirov/fragment-bingo/internal/config"
	"github.com/eugenenazirov/fragment-bingo/internal/harness"
	"github.com/eugenenazirov/fragment-bingo/internal/oracle"
	"github.com/eugenenazirov/fragment-bingo/internal/predictor"
	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
	"github.com/eugenenazirov/fragment-bingo/internal/sampler"
)

// App encapsulates the calculators and their shared configuration.
type App struct {
	cfg        config.Config
	table      *binomial.Table
	predictor  *predictor.Predictor
	enumerator oracle.Enumerator
	harness    *harness.Harness
	logger     *zap.Logger
}

// Prediction pairs the rounded and exact closed-form results.
type Prediction struct {
	P     float64
	Exact *big.Rat
}

// SampleResult is a Monte Carlo estimate checked against the prediction.
type SampleResult struct {
	Estimate   sampler.Estimate
	Predicted  float64
	PValue     float64
	Consistent bool
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	table, err := binomial.New(cfg.TableBound)
	if err != nil {
		return nil, fmt.Errorf("failed to build binomial table: %w", err)
	}

	enumerator, err := oracle.NewCached(oracle.New(), cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create enumerator: %w", err)
	}

	pred := predictor.New(table)
	h := harness.New(pred, enumerator,
		harness.WithTolerance(cfg.Tolerance),
		harness.WithBelowPicture(cfg.BelowPicture),
		harness.WithProgressInterval(cfg.ProgressInterval),
		harness.WithLogger(logger.Named("harness")),
	)

	logger.Debug("binomial table built", zap.Int("bound", table.Bound()))

	return &App{
		cfg:        cfg,
		table:      table,
		predictor:  pred,
		enumerator: enumerator,
		harness:    h,
		logger:     logger,
	}, nil
}

// Predict evaluates the closed form for q.
func (a *App) Predict(q puzzle.Query) (Prediction, error) {
	exact, err := a.predictor.PredictRat(q)
	if err != nil {
		return Prediction{}, err
	}
	p, _ := exact.Float64()
	return Prediction{P: p, Exact: exact}, nil
}

// Enumerate counts bingo subsets for q by brute force.
func (a *App) Enumerate(q puzzle.Query) (oracle.Result, error) {
	a.logger.Debug("enumerating", zap.Stringer("query", q))
	return a.enumerator.Enumerate(q)
}

// Sweep runs the verification harness over the configured bounds.
func (a *App) Sweep(ctx context.Context) (harness.Report, error) {
	return a.SweepRange(ctx, a.cfg.SweepMaxA, a.cfg.SweepMaxB)
}

// SweepRange runs the verification harness over explicit bounds.
func (a *App) SweepRange(ctx context.Context, maxA, maxB int) (harness.Report, error) {
	a.logger.Info("sweep started", zap.Int("max_a", maxA), zap.Int("max_b", maxB))
	return a.harness.Run(ctx, maxA, maxB)
}

// Sample draws cfg.SampleTrials random subsets and compares the hit rate with
// the closed form at the 1% significance level.
func (a *App) Sample(ctx context.Context, q puzzle.Query) (SampleResult, error) {
	predicted, err := a.predictor.Predict(q)
	if err != nil {
		return SampleResult{}, err
	}

	est, err := sampler.New(a.cfg.Seed).Estimate(ctx, q, a.cfg.SampleTrials)
	if err != nil {
		return SampleResult{}, err
	}

	pValue := sampler.PValue(est, predicted)
	return SampleResult{
		Estimate:   est,
		Predicted:  predicted,
		PValue:     pValue,
		Consistent: pValue >= 0.01,
	}, nil
}

// Curve evaluates the closed form for every draw size.
func (a *App) Curve(pictures, fragments int) ([]predictor.Point, error) {
	return a.predictor.Curve(pictures, fragments)
}

// TableRow returns row n of the binomial table.
func (a *App) TableRow(n int) ([]*big.Int, error) {
	return a.table.Row(n)
}
