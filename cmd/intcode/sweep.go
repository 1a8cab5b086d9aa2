package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/intcode/pkg/loader"
	"github.com/akhildatla/intcode/pkg/sweep"
)

// errFailed reports a command that ran but found failures.
var errFailed = errors.New("failed")

func sweepCommand(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	common := addCommonFlags(fs)
	target := fs.Int64("target", 0, "result to search for (default from config)")
	maxNoun := fs.Int64("max-noun", 0, "largest noun to try (default from config)")
	maxVerb := fs.Int64("max-verb", 0, "largest verb to try (default from config)")
	workers := fs.Int("workers", 0, "parallel runs (default from config)")
	grid := fs.Bool("grid", false, "output every result as a table")
	format := fs.String("format", "csv", "table format: csv or json")
	output := fs.String("o", "", "table output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: intcode sweep <program>")
	}

	cfg, err := common.setup(fs)
	if err != nil {
		return err
	}

	p, err := loader.LoadProgram(fs.Arg(0))
	if err != nil {
		return err
	}

	opts := sweep.Options{
		MaxNoun:  cfg.Sweep.MaxNoun,
		MaxVerb:  cfg.Sweep.MaxVerb,
		Workers:  cfg.Sweep.Workers,
		MaxSteps: cfg.Machine.MaxSteps,
	}
	set := setFlags(fs)
	if set["max-noun"] {
		opts.MaxNoun = *maxNoun
	}
	if set["max-verb"] {
		opts.MaxVerb = *maxVerb
	}
	if *workers > 0 {
		opts.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *grid {
		df, err := sweep.Grid(ctx, p, opts)
		if err != nil {
			return err
		}
		return writeTable(ctx, df, *format, *output)
	}

	t := cfg.Sweep.Target
	if set["target"] {
		t = *target
	}
	noun, verb, err := sweep.FindNounVerb(ctx, p, t, opts)
	if err != nil {
		return err
	}
	fmt.Printf("noun=%d verb=%d answer=%d\n", noun, verb, 100*noun+verb)
	return nil
}

func batchCommand(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	common := addCommonFlags(fs)
	format := fs.String("format", "csv", "report format: csv or json")
	output := fs.String("o", "", "report output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: intcode batch <program> <cases.csv|json|parquet>")
	}

	cfg, err := common.setup(fs)
	if err != nil {
		return err
	}

	p, err := loader.LoadProgram(fs.Arg(0))
	if err != nil {
		return err
	}

	cases, err := loader.LoadCases(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("loading cases: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	df, err := sweep.Batch(ctx, p, cases, sweep.Options{MaxSteps: cfg.Machine.MaxSteps})
	if err != nil {
		return err
	}
	if err := writeTable(ctx, df, *format, *output); err != nil {
		return err
	}

	if n := sweep.CountFailures(df); n > 0 {
		return fmt.Errorf("%d of %d cases %w", n, len(cases), errFailed)
	}
	return nil
}

func writeTable(ctx context.Context, df *dataframe.DataFrame, format, output string) error {
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := sweep.WriteTable(ctx, w, df, format); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	if output != "" {
		fmt.Printf("Wrote %d rows to: %s\n", df.NRows(), output)
	}
	return nil
}
