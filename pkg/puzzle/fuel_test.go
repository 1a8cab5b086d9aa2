package puzzle

import (
	"errors"
	"testing"
)

func TestModuleFuel(t *testing.T) {
	tests := []struct {
		mass       int64
		moduleFuel int64
		totalFuel  int64
	}{
		{12, 2, 2},
		{14, 2, 2},
		{1969, 654, 966},
		{100756, 33583, 50346},
		{2, -2, 0},
	}

	for _, tt := range tests {
		if got := ModuleFuel(tt.mass); got != tt.moduleFuel {
			t.Errorf("ModuleFuel(%d): expected %d, got %d", tt.mass, tt.moduleFuel, got)
		}
		if got := TotalFuel(tt.mass); got != tt.totalFuel {
			t.Errorf("TotalFuel(%d): expected %d, got %d", tt.mass, tt.totalFuel, got)
		}
	}
}

func TestFuelRequirements(t *testing.T) {
	masses := []int64{12, 14, 1969, 100756}

	if got, want := FuelRequirements(masses, true), int64(2+2+654+33583); got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
	if got, want := FuelRequirements(masses, false), int64(2+2+966+50346); got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
	if got := FuelRequirements(nil, false); got != 0 {
		t.Errorf("expected 0 for no modules, got %d", got)
	}
}

func TestParseInts(t *testing.T) {
	values, err := ParseInts("12\n14\n\n1969\n")
	if err != nil {
		t.Fatalf("ParseInts failed: %v", err)
	}
	if len(values) != 3 || values[2] != 1969 {
		t.Errorf("expected [12 14 1969], got %v", values)
	}

	if _, err := ParseInts("12\nabc"); !errors.Is(err, ErrBadInput) {
		t.Errorf("expected ErrBadInput, got %v", err)
	}
}
