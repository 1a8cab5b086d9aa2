package loader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Case table column names. All are optional.
const (
	ColName     = "name"
	ColNoun     = "noun"
	ColVerb     = "verb"
	ColInput    = "input"
	ColExpected = "expected"
)

var ErrBadCell = errors.New("bad cell")

// Case is one row of a batch case table: a run of a program with optional
// noun/verb replacement, scripted inputs, and expected outputs.
type Case struct {
	Name     string
	Noun     *int64
	Verb     *int64
	Inputs   []int64
	Expected []int64 // nil when the row has no expectation
}

// CasesFromFrame converts a case table into Cases. List cells (input,
// expected) hold a single integer or integers separated by spaces, commas
// or semicolons.
func CasesFromFrame(df *dataframe.DataFrame) ([]Case, error) {
	cols := map[string]dataframe.Series{}
	for _, s := range df.Series {
		cols[strings.ToLower(s.Name())] = s
	}

	rows := df.NRows()
	cases := make([]Case, rows)
	for i := 0; i < rows; i++ {
		c := Case{Name: fmt.Sprintf("case-%d", i+1)}

		if name, ok := getStringValue(cols[ColName], i); ok && name != "" {
			c.Name = name
		}
		if v, ok := getInt64Value(cols[ColNoun], i); ok {
			c.Noun = &v
		}
		if v, ok := getInt64Value(cols[ColVerb], i); ok {
			c.Verb = &v
		}
		if (c.Noun == nil) != (c.Verb == nil) {
			return nil, fmt.Errorf("%w: row %d: noun and verb must be given together", ErrBadCell, i+1)
		}

		var err error
		if c.Inputs, err = getIntList(cols[ColInput], i); err != nil {
			return nil, fmt.Errorf("row %d column %s: %w", i+1, ColInput, err)
		}
		if c.Expected, err = getIntList(cols[ColExpected], i); err != nil {
			return nil, fmt.Errorf("row %d column %s: %w", i+1, ColExpected, err)
		}

		cases[i] = c
	}
	return cases, nil
}

// LoadCases reads a case table and converts it.
func LoadCases(path string) ([]Case, error) {
	df, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	return CasesFromFrame(df)
}

// getInt64Value extracts an integer from a Series at index i.
// ok is false for a missing column, a nil cell or a non-numeric value.
func getInt64Value(s dataframe.Series, i int) (int64, bool) {
	if s == nil || i < 0 || i >= s.NRows() {
		return 0, false
	}
	switch val := s.Value(i).(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case float64:
		return int64(val), true
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return v, err == nil
	default:
		return 0, false
	}
}

// getStringValue extracts a string value from a Series at index i.
func getStringValue(s dataframe.Series, i int) (string, bool) {
	if s == nil || i < 0 || i >= s.NRows() {
		return "", false
	}
	switch val := s.Value(i).(type) {
	case string:
		return val, true
	case nil:
		return "", false
	default:
		return fmt.Sprint(val), true
	}
}

// getIntList extracts a list of integers from a Series at index i. A missing
// column or nil cell yields nil.
func getIntList(s dataframe.Series, i int) ([]int64, error) {
	if s == nil || i < 0 || i >= s.NRows() || s.Value(i) == nil {
		return nil, nil
	}
	if v, ok := getInt64Value(s, i); ok {
		return []int64{v}, nil
	}
	str, _ := getStringValue(s, i)
	fields := strings.FieldsFunc(str, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, nil
	}
	list := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadCell, str)
		}
		list = append(list, v)
	}
	return list, nil
}
