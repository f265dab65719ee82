// bingo computes and cross-checks the probability that k fragments drawn from
// a pool of a pictures, each cut into b fragments, complete at least one
// picture.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/fragment-bingo/internal/application"
	"github.com/eugenenazirov/fragment-bingo/internal/config"
	"github.com/eugenenazirov/fragment-bingo/internal/logging"
	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

var signalNotify = signal.Notify

// errSweepFailed marks a sweep that found a mismatch; the report has already
// been printed.
var errSweepFailed = errors.New("sweep found a mismatch")

type queryFlags struct {
	pictures  *int
	fragments *int
	drawn     *int
}

func addQueryFlags(cmd *kingpin.CmdClause, withDrawn bool) queryFlags {
	f := queryFlags{
		pictures:  cmd.Flag("pictures", "Number of pictures (a)").Short('a').Required().Int(),
		fragments: cmd.Flag("fragments", "Fragments per picture (b)").Short('b').Required().Int(),
	}
	if withDrawn {
		f.drawn = cmd.Flag("drawn", "Fragments drawn (k)").Short('k').Required().Int()
	}
	return f
}

func (f queryFlags) query() (puzzle.Query, error) {
	drawn := 0
	if f.drawn != nil {
		drawn = *f.drawn
	}
	return puzzle.New(*f.pictures, *f.fragments, drawn)
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errSweepFailed):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	kingpinApp := kingpin.New("bingo", "Fragment bingo probability - closed form, enumeration and sampling")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	tableBound := kingpinApp.Flag("table-bound", "Rows of the binomial table; a*b must stay below it (0 keeps the configured value)").Default("0").Int()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	output := kingpinApp.Flag("output", "Output format").Default("text").Enum("text", "yaml")

	predictCmd := kingpinApp.Command("predict", "Closed-form probability")
	predictQuery := addQueryFlags(predictCmd, true)

	enumerateCmd := kingpinApp.Command("enumerate", "Brute-force probability over every subset")
	enumerateQuery := addQueryFlags(enumerateCmd, true)

	sweepCmd := kingpinApp.Command("sweep", "Cross-check closed form against enumeration")
	maxA := sweepCmd.Flag("max-a", "Exclusive upper bound on pictures").Default("0").Int()
	maxB := sweepCmd.Flag("max-b", "Exclusive upper bound on fragments").Default("0").Int()
	tolerance := sweepCmd.Flag("tolerance", "Largest difference treated as agreement (negative keeps the configured value)").Default("-1").Float64()
	belowPicture := sweepCmd.Flag("below-picture", "Also verify draws smaller than one picture").Bool()

	sampleCmd := kingpinApp.Command("sample", "Monte Carlo estimate checked against the closed form")
	sampleQuery := addQueryFlags(sampleCmd, true)
	trials := sampleCmd.Flag("trials", "Number of random draws (0 keeps the configured value)").Default("0").Int()
	seed := sampleCmd.Flag("seed", "Random seed (negative keeps the configured value)").Default("-1").Int64()

	curveCmd := kingpinApp.Command("curve", "Closed-form probability for every draw size")
	curveQuery := addQueryFlags(curveCmd, false)

	tableCmd := kingpinApp.Command("table", "Print one row of the binomial table")
	row := tableCmd.Flag("row", "Row index n").Required().Int()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	overrides := &config.CLIOverrides{ConfigFile: *configFile}
	if *tableBound > 0 {
		overrides.TableBound = tableBound
	}
	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}
	if *maxA > 0 {
		overrides.SweepMaxA = maxA
	}
	if *maxB > 0 {
		overrides.SweepMaxB = maxB
	}
	if *tolerance >= 0 {
		overrides.Tolerance = tolerance
	}
	if *belowPicture {
		overrides.BelowPicture = belowPicture
	}
	if *trials > 0 {
		overrides.SampleTrials = trials
	}
	if *seed >= 0 {
		s := uint64(*seed)
		overrides.Seed = &s
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, stop := withSignals(context.Background(), logger)
	defer stop()

	out := &printer{w: stdout, yaml: *output == "yaml"}

	switch command {
	case predictCmd.FullCommand():
		q, err := predictQuery.query()
		if err != nil {
			return err
		}
		pred, err := app.Predict(q)
		if err != nil {
			return err
		}
		return out.print(map[string]any{"query": q, "p": pred.P, "exact": pred.Exact.RatString()},
			"%s P = %.17g (%s)\n", q, pred.P, pred.Exact.RatString())

	case enumerateCmd.FullCommand():
		q, err := enumerateQuery.query()
		if err != nil {
			return err
		}
		res, err := app.Enumerate(q)
		if err != nil {
			return err
		}
		return out.print(map[string]any{"query": q, "bingo": res.Bingo, "total": res.Total, "p": res.Probability()},
			"%s bingo %d / %d = %.17g\n", q, res.Bingo, res.Total, res.Probability())

	case sweepCmd.FullCommand():
		report, err := app.Sweep(ctx)
		if err != nil {
			return err
		}
		if err := out.print(report, "%s\n", report); err != nil {
			return err
		}
		if !report.OK() {
			logger.Warn("sweep failed", zap.Error(report.Err()))
			return errSweepFailed
		}
		return nil

	case sampleCmd.FullCommand():
		q, err := sampleQuery.query()
		if err != nil {
			return err
		}
		res, err := app.Sample(ctx, q)
		if err != nil {
			return err
		}
		est := res.Estimate
		return out.print(map[string]any{"query": q, "estimate": est, "predicted": res.Predicted, "p_value": res.PValue, "consistent": res.Consistent},
			"%s sampled %.6f [%.6f, %.6f] over %d draws, predicted %.6f, p-value %.4f, consistent %t\n",
			q, est.P, est.Lower, est.Upper, est.Trials, res.Predicted, res.PValue, res.Consistent)

	case curveCmd.FullCommand():
		if _, err := curveQuery.query(); err != nil {
			return err
		}
		points, err := app.Curve(*curveQuery.pictures, *curveQuery.fragments)
		if err != nil {
			return err
		}
		if out.yaml {
			return out.print(points, "")
		}
		for _, pt := range points {
			if _, err := fmt.Fprintf(stdout, "%d\t%.17g\n", pt.Drawn, pt.P); err != nil {
				return err
			}
		}
		return nil

	case tableCmd.FullCommand():
		values, err := app.TableRow(*row)
		if err != nil {
			return err
		}
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = v.String()
		}
		if out.yaml {
			return out.print(map[string]any{"row": *row, "values": strs}, "")
		}
		for r, s := range strs {
			if _, err := fmt.Fprintf(stdout, "C(%d, %d) = %s\n", *row, r, s); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unknown command %q", command)
}

type printer struct {
	w    io.Writer
	yaml bool
}

func (p *printer) print(doc any, format string, args ...any) error {
	if p.yaml {
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		return enc.Close()
	}
	_, err := fmt.Fprintf(p.w, format, args...)
	return err
}

// withSignals cancels the returned context on SIGINT or SIGTERM so long
// sweeps and samples stop between units of work.
func withSignals(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-quit:
			logger.Info("interrupted, stopping", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(quit)
		cancel()
	}
}
