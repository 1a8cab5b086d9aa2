package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/akhildatla/intcode/pkg/puzzle"
)

func solveCommand(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	length := fs.Int("length", 6, "password length (passwords)")
	begin := fs.String("from", "YOU", "start object (orbits)")
	end := fs.String("to", "SAN", "target object (orbits)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: intcode solve <fuel|wires|passwords|orbits> <input>")
	}

	name, arg := fs.Arg(0), fs.Arg(1)

	if name == "passwords" {
		return solvePasswords(*length, arg)
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	text := string(data)

	switch name {
	case "fuel":
		masses, err := puzzle.ParseInts(text)
		if err != nil {
			return err
		}
		printParts(puzzle.FuelRequirements(masses, true), puzzle.FuelRequirements(masses, false))
		return nil

	case "wires":
		wires, err := puzzle.ParseWires(text)
		if err != nil {
			return err
		}
		closest, err := puzzle.ClosestIntersection(wires)
		if err != nil {
			return err
		}
		shortest, err := puzzle.ShortestIntersection(wires)
		if err != nil {
			return err
		}
		printParts(closest, shortest)
		return nil

	case "orbits":
		m, err := puzzle.ParseOrbits(text)
		if err != nil {
			return err
		}
		path, err := m.ShortestPath(*begin, *end)
		if err != nil {
			return err
		}
		printParts(m.CountOrbits(), path)
		return nil

	default:
		return fmt.Errorf("unknown puzzle: %s", name)
	}
}

// solvePasswords takes the range as "lo-hi".
func solvePasswords(length int, bounds string) error {
	loStr, hiStr, ok := strings.Cut(bounds, "-")
	if !ok {
		return fmt.Errorf("password range must be lo-hi, got %q", bounds)
	}
	lo, err := strconv.ParseInt(loStr, 10, 64)
	if err != nil {
		return fmt.Errorf("bad range start %q", loStr)
	}
	hi, err := strconv.ParseInt(hiStr, 10, 64)
	if err != nil {
		return fmt.Errorf("bad range end %q", hiStr)
	}

	loose, err := puzzle.ValidPasswords(length, lo, hi, false)
	if err != nil {
		return err
	}
	strict, err := puzzle.ValidPasswords(length, lo, hi, true)
	if err != nil {
		return err
	}
	printParts(len(loose), len(strict))
	return nil
}

func printParts(part1, part2 any) {
	fmt.Printf("Part 1: %v\n", part1)
	fmt.Printf("Part 2: %v\n", part2)
}
