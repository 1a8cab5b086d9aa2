// Package testutil provides testing utilities for intcode tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/intcode/pkg/vm"
)

// Canned programs used across packages.
const (
	// EqualsEight reads one value and outputs 1 if it equals 8, else 0.
	EqualsEight = "3,9,8,9,10,9,4,9,99,-1,8"

	// CompareEight outputs 999, 1000 or 1001 for inputs below, equal to or
	// above 8.
	CompareEight = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

	// NounVerbSum leaves mem[noun] + mem[verb] at address 0.
	NounVerbSum = "1,0,0,0,99,10,20,30,40"

	// EqualsEightAsm is EqualsEight in assembly form.
	EqualsEightAsm = `
        IN   value
        EQ   value, eight, value
        OUT  value
        HALT
value:  DATA -1
eight:  DATA 8
`
)

// TempFile creates a temporary file with the given content and extension.
// The file is removed when the test finishes.
func TempFile(t *testing.T, content, ext string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test"+ext)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// TempImage writes p as a compiled image and returns its path.
func TempImage(t *testing.T, p vm.Program) string {
	t.Helper()
	data, err := vm.SerializeProgram(p)
	if err != nil {
		t.Fatalf("failed to serialize program: %v", err)
	}
	return TempFile(t, string(data), ".icb")
}

// CasesCSV returns a case table for EqualsEight.
func CasesCSV() string {
	return `name,input,expected
eight,8,1
one,1,0
wrong,2,1`
}

// MakeCasesFrame creates the CasesCSV table in memory.
func MakeCasesFrame() *dataframe.DataFrame {
	return dataframe.NewDataFrame(
		dataframe.NewSeriesString("name", nil, "eight", "one", "wrong"),
		dataframe.NewSeriesInt64("input", nil, 8, 1, 2),
		dataframe.NewSeriesInt64("expected", nil, 1, 0, 1),
	)
}

// AssertInt64Equal checks if two int64 values are equal.
func AssertInt64Equal(t *testing.T, expected, actual int64) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected %d, got %d", expected, actual)
	}
}

// AssertOutputs checks a captured output sequence.
func AssertOutputs(t *testing.T, expected, actual []int64) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("expected outputs %v, got %v", expected, actual)
		return
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Errorf("expected outputs %v, got %v", expected, actual)
			return
		}
	}
}
