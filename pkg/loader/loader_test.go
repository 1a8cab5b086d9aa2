package loader

import (
	"errors"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/intcode/internal/testutil"
	"github.com/akhildatla/intcode/pkg/vm"
)

func TestLoadProgram_Text(t *testing.T) {
	path := testutil.TempFile(t, testutil.EqualsEight+"\n", ".txt")

	p, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}
	if p.String() != testutil.EqualsEight {
		t.Errorf("expected %s, got %s", testutil.EqualsEight, p)
	}
}

func TestLoadProgram_Assembly(t *testing.T) {
	path := testutil.TempFile(t, testutil.EqualsEightAsm, ExtAssembly)

	p, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}
	if p.String() != testutil.EqualsEight {
		t.Errorf("expected %s, got %s", testutil.EqualsEight, p)
	}
}

func TestLoadProgram_Image(t *testing.T) {
	want := vm.MustParse(testutil.CompareEight)
	path := testutil.TempImage(t, want)

	p, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}
	if !p.Equal(want) {
		t.Errorf("expected %s, got %s", want, p)
	}
}

func TestLoadProgram_Errors(t *testing.T) {
	if _, err := LoadProgram("/nonexistent/program.txt"); err == nil {
		t.Error("expected error for missing file")
	}

	path := testutil.TempFile(t, "1,two,3", ".txt")
	if _, err := LoadProgram(path); !errors.Is(err, vm.ErrMalformedProgram) {
		t.Errorf("expected ErrMalformedProgram, got %v", err)
	}

	path = testutil.TempFile(t, "NOP", ExtAssembly)
	if _, err := LoadProgram(path); err == nil {
		t.Error("expected assembly error")
	}

	path = testutil.TempFile(t, "not cbor", ExtImage)
	if _, err := LoadProgram(path); err == nil {
		t.Error("expected image error")
	}
}

func TestLoadTable_CSV(t *testing.T) {
	path := testutil.TempFile(t, testutil.CasesCSV(), ".csv")

	df, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if df.NRows() != 3 {
		t.Errorf("expected 3 rows, got %d", df.NRows())
	}
	if len(df.Series) != 3 {
		t.Errorf("expected 3 columns, got %d", len(df.Series))
	}
}

func TestLoadTable_JSON(t *testing.T) {
	path := testutil.TempFile(t, `[
		{"name": "eight", "input": 8, "expected": 1},
		{"name": "one", "input": 1, "expected": 0}
	]`, ".json")

	cases, err := LoadCases(path)
	if err != nil {
		t.Fatalf("LoadCases failed: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0].Name != "eight" {
		t.Errorf("expected name eight, got %q", cases[0].Name)
	}
	if len(cases[1].Inputs) != 1 || cases[1].Inputs[0] != 1 {
		t.Errorf("expected inputs [1], got %v", cases[1].Inputs)
	}
}

func TestLoadTable_Errors(t *testing.T) {
	if _, err := LoadTable("cases.xlsx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := LoadTable("/nonexistent/cases.csv"); err == nil {
		t.Error("expected error for missing CSV")
	}
	if _, err := LoadTable("/nonexistent/cases.parquet"); err == nil {
		t.Error("expected error for missing Parquet file")
	}

	path := testutil.TempFile(t, "", ".json")
	if _, err := LoadTable(path); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestLoadCases_CSV(t *testing.T) {
	path := testutil.TempFile(t, testutil.CasesCSV(), ".csv")

	cases, err := LoadCases(path)
	if err != nil {
		t.Fatalf("LoadCases failed: %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(cases))
	}
	if cases[2].Name != "wrong" {
		t.Errorf("expected name wrong, got %q", cases[2].Name)
	}
	testutil.AssertOutputs(t, []int64{2}, cases[2].Inputs)
	testutil.AssertOutputs(t, []int64{1}, cases[2].Expected)
}

func TestCasesFromFrame(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesInt64("noun", nil, 12, nil),
		dataframe.NewSeriesInt64("verb", nil, 2, nil),
		dataframe.NewSeriesString("input", nil, "1 2;3", nil),
		dataframe.NewSeriesString("expected", nil, nil, "7,8"),
	)

	cases, err := CasesFromFrame(df)
	if err != nil {
		t.Fatalf("CasesFromFrame failed: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}

	first := cases[0]
	if first.Name != "case-1" {
		t.Errorf("expected default name case-1, got %q", first.Name)
	}
	if first.Noun == nil || *first.Noun != 12 || first.Verb == nil || *first.Verb != 2 {
		t.Errorf("expected noun 12 verb 2, got %v %v", first.Noun, first.Verb)
	}
	testutil.AssertOutputs(t, []int64{1, 2, 3}, first.Inputs)
	if first.Expected != nil {
		t.Errorf("expected no expectation, got %v", first.Expected)
	}

	second := cases[1]
	if second.Noun != nil || second.Verb != nil {
		t.Error("expected no noun/verb in second case")
	}
	testutil.AssertOutputs(t, []int64{7, 8}, second.Expected)
}

func TestCasesFromFrame_Errors(t *testing.T) {
	tests := []struct {
		name string
		df   *dataframe.DataFrame
	}{
		{"noun without verb", dataframe.NewDataFrame(
			dataframe.NewSeriesInt64("noun", nil, 1),
		)},
		{"bad input list", dataframe.NewDataFrame(
			dataframe.NewSeriesString("input", nil, "1 x"),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CasesFromFrame(tt.df); !errors.Is(err, ErrBadCell) {
				t.Errorf("expected ErrBadCell, got %v", err)
			}
		})
	}
}
