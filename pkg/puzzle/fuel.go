package puzzle

// ModuleFuel returns the fuel needed to launch a module of the given mass,
// not counting the mass of the fuel itself.
func ModuleFuel(mass int64) int64 {
	return floorDiv(mass, 3) - 2
}

// TotalFuel returns the fuel for a module including the fuel needed to
// carry its fuel. Non-positive amounts need no fuel.
func TotalFuel(mass int64) int64 {
	var total int64
	for fuel := ModuleFuel(mass); fuel > 0; fuel = ModuleFuel(fuel) {
		total += fuel
	}
	return total
}

// FuelRequirements sums the fuel for all modules. With ignoreFuelMass the
// fuel's own mass is left out.
func FuelRequirements(masses []int64, ignoreFuelMass bool) int64 {
	fuel := TotalFuel
	if ignoreFuelMass {
		fuel = ModuleFuel
	}
	var sum int64
	for _, m := range masses {
		sum += fuel(m)
	}
	return sum
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
