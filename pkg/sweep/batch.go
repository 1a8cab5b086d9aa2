package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/exports"

	"github.com/akhildatla/intcode/pkg/embed"
	"github.com/akhildatla/intcode/pkg/loader"
	"github.com/akhildatla/intcode/pkg/vm"
)

var (
	ErrNoCases       = errors.New("no cases")
	ErrUnknownFormat = errors.New("unknown output format")
)

// Batch column names.
const (
	ColName    = "name"
	ColStatus  = "status"
	ColOutputs = "outputs"
	ColPassed  = "passed"
)

// Values of the passed column. The cell is nil for cases without an
// expectation.
const (
	Passed = "true"
	Failed = "false"
)

// StatusOK is the status of a case that halted normally.
const StatusOK = "ok"

// Batch runs p once per case and returns a frame with one row per case:
// name, status ("ok" or the fault), outputs, result (word at address 0) and
// passed (outputs compared with the expectation). A fault is reported in
// the row, it does not stop the batch.
func Batch(ctx context.Context, p vm.Program, cases []loader.Case, opts Options) (*dataframe.DataFrame, error) {
	if len(cases) == 0 {
		return nil, ErrNoCases
	}

	n := len(cases)
	names := make([]interface{}, n)
	statuses := make([]interface{}, n)
	outputs := make([]interface{}, n)
	results := make([]interface{}, n)
	passed := make([]interface{}, n)

	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		names[i] = c.Name
		runOpts := []embed.Option{embed.WithInputs(c.Inputs...), embed.WithMaxSteps(opts.MaxSteps)}
		if c.Noun != nil && c.Verb != nil {
			runOpts = append(runOpts, embed.WithNounVerb(*c.Noun, *c.Verb))
		}

		res, err := embed.ExecuteProgram(p, runOpts...)
		if err != nil {
			log.Warningf("case %s: %v", c.Name, err)
			statuses[i] = err.Error()
			if c.Expected != nil {
				passed[i] = Failed
			}
			continue
		}

		statuses[i] = StatusOK
		outputs[i] = FormatInts(res.Outputs)
		results[i] = res.Memory[0]
		if c.Expected != nil {
			if equalInts(c.Expected, res.Outputs) {
				passed[i] = Passed
			} else {
				passed[i] = Failed
			}
		}
	}

	return dataframe.NewDataFrame(
		dataframe.NewSeriesString(ColName, nil, names...),
		dataframe.NewSeriesString(ColStatus, nil, statuses...),
		dataframe.NewSeriesString(ColOutputs, nil, outputs...),
		dataframe.NewSeriesInt64(ColResult, nil, results...),
		dataframe.NewSeriesString(ColPassed, nil, passed...),
	), nil
}

// CountFailures returns the number of rows of a Batch frame whose passed
// cell is Failed.
func CountFailures(df *dataframe.DataFrame) int {
	idx, err := df.NameToColumn(ColPassed)
	if err != nil {
		return 0
	}
	col := df.Series[idx]
	failures := 0
	for i := 0; i < col.NRows(); i++ {
		if col.Value(i) == Failed {
			failures++
		}
	}
	return failures
}

// FormatInts joins values with single spaces, the list format accepted in
// case tables.
func FormatInts(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, " ")
}

func equalInts(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// WriteCSV writes a frame as CSV.
func WriteCSV(ctx context.Context, w io.Writer, df *dataframe.DataFrame) error {
	return exports.ExportToCSV(ctx, w, df)
}

// WriteJSON writes a frame as JSON records.
func WriteJSON(ctx context.Context, w io.Writer, df *dataframe.DataFrame) error {
	return exports.ExportToJSON(ctx, w, df)
}

// WriteTable writes a frame in the named format, "csv" or "json".
func WriteTable(ctx context.Context, w io.Writer, df *dataframe.DataFrame, format string) error {
	switch strings.ToLower(format) {
	case "", "csv":
		return WriteCSV(ctx, w, df)
	case "json":
		return WriteJSON(ctx, w, df)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
