// Package sweep runs an Intcode program many times: over a grid of noun and
// verb values, or over a table of cases. Results are returned as DataFrames.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/akhildatla/intcode/pkg/vm"
)

var (
	ErrNotFound      = errors.New("no noun and verb produce the target")
	ErrInvalidBounds = errors.New("invalid sweep bounds")
)

var log = commonlog.GetLogger("intcode.sweep")

// Grid column names.
const (
	ColNoun   = "noun"
	ColVerb   = "verb"
	ColResult = "result"
)

// Options bounds a sweep. A zero MaxNoun or MaxVerb is a real bound, it
// restricts the sweep to 0. Use DefaultOptions for the 0..99 search.
type Options struct {
	MaxNoun  int64 // inclusive, must not be negative
	MaxVerb  int64 // inclusive, must not be negative
	Workers  int   // concurrent runs, default runtime.NumCPU()
	MaxSteps int64 // per-run instruction limit, zero means unlimited
}

// DefaultOptions returns the bounds of the classic noun/verb search.
func DefaultOptions() Options {
	return Options{MaxNoun: 99, MaxVerb: 99, Workers: runtime.NumCPU()}
}

func (o Options) normalize() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

func (o Options) validate(p vm.Program) error {
	if o.MaxNoun < 0 || o.MaxVerb < 0 {
		return fmt.Errorf("%w: noun %d verb %d", ErrInvalidBounds, o.MaxNoun, o.MaxVerb)
	}
	if len(p) <= vm.VerbAddr {
		return fmt.Errorf("%w: program has %d words", vm.ErrOutOfBounds, len(p))
	}
	return nil
}

// runNounVerb runs p with the given noun and verb and returns the word left
// at address 0.
func runNounVerb(p vm.Program, noun, verb, maxSteps int64) (int64, error) {
	m := vm.NewMachine(p)
	if err := m.SetNounVerb(noun, verb); err != nil {
		return 0, err
	}
	m.SetMaxSteps(maxSteps)
	m.SetIO(vm.NewScriptedIO())
	mem, err := m.Execute()
	if err != nil {
		return 0, err
	}
	return mem[0], nil
}

// FindNounVerb searches nouns and verbs in ascending order for the first pair
// that leaves target at address 0. Runs that fault count as misses.
func FindNounVerb(ctx context.Context, p vm.Program, target int64, opts Options) (noun, verb int64, err error) {
	opts = opts.normalize()
	if err := opts.validate(p); err != nil {
		return 0, 0, err
	}

	// best holds the lowest noun with a match so far, or -1.
	var best atomic.Int64
	best.Store(-1)
	verbs := make([]int64, opts.MaxNoun+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for n := int64(0); n <= opts.MaxNoun; n++ {
		n := n
		g.Go(func() error {
			verbs[n] = -1
			if b := best.Load(); b >= 0 && b < n {
				return nil
			}
			for v := int64(0); v <= opts.MaxVerb; v++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				result, err := runNounVerb(p, n, v, opts.MaxSteps)
				if err != nil || result != target {
					continue
				}
				verbs[n] = v
				for {
					b := best.Load()
					if (b >= 0 && b <= n) || best.CompareAndSwap(b, n) {
						break
					}
				}
				return nil
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	if b := best.Load(); b >= 0 {
		log.Infof("found noun %d verb %d for target %d", b, verbs[b], target)
		return b, verbs[b], nil
	}
	return 0, 0, fmt.Errorf("%w: %d", ErrNotFound, target)
}

// Grid runs p for every noun and verb within the bounds and returns a frame
// with one row per run, ordered by noun then verb. The result cell is nil for
// runs that fault.
func Grid(ctx context.Context, p vm.Program, opts Options) (*dataframe.DataFrame, error) {
	opts = opts.normalize()
	if err := opts.validate(p); err != nil {
		return nil, err
	}

	width := opts.MaxVerb + 1
	rows := (opts.MaxNoun + 1) * width
	nouns := make([]interface{}, rows)
	verbs := make([]interface{}, rows)
	results := make([]interface{}, rows)

	var faults atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for n := int64(0); n <= opts.MaxNoun; n++ {
		n := n
		g.Go(func() error {
			for v := int64(0); v <= opts.MaxVerb; v++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				i := n*width + v
				nouns[i], verbs[i] = n, v
				result, err := runNounVerb(p, n, v, opts.MaxSteps)
				if err != nil {
					faults.Add(1)
					continue
				}
				results[i] = result
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Infof("grid: %d runs, %d faulted", rows, faults.Load())

	return dataframe.NewDataFrame(
		dataframe.NewSeriesInt64(ColNoun, nil, nouns...),
		dataframe.NewSeriesInt64(ColVerb, nil, verbs...),
		dataframe.NewSeriesInt64(ColResult, nil, results...),
	), nil
}
