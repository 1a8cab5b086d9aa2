package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a grid position. The central port is the origin.
type Point struct {
	X, Y int
}

// Distance returns the Manhattan distance from the origin.
func (p Point) Distance() int {
	return abs(p.X) + abs(p.Y)
}

// Wire is the ordered list of grid points a wire passes through, not
// including the origin.
type Wire []Point

var directions = map[byte]Point{
	'R': {1, 0},
	'L': {-1, 0},
	'U': {0, 1},
	'D': {0, -1},
}

// ParseWire traces a path such as "R8,U5,L5,D3".
func ParseWire(path string) (Wire, error) {
	var wire Wire
	var pos Point
	for _, move := range strings.Split(strings.TrimSpace(path), ",") {
		move = strings.TrimSpace(move)
		if len(move) < 2 {
			return nil, fmt.Errorf("%w: move %q", ErrBadInput, move)
		}
		dir, ok := directions[move[0]]
		if !ok {
			return nil, fmt.Errorf("%w: direction %q", ErrBadInput, move[0])
		}
		steps, err := strconv.Atoi(move[1:])
		if err != nil || steps < 0 {
			return nil, fmt.Errorf("%w: move %q", ErrBadInput, move)
		}
		for i := 0; i < steps; i++ {
			pos = Point{pos.X + dir.X, pos.Y + dir.Y}
			wire = append(wire, pos)
		}
	}
	return wire, nil
}

// ParseWires reads one wire path per non-empty line.
func ParseWires(text string) ([]Wire, error) {
	var wires []Wire
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w, err := ParseWire(line)
		if err != nil {
			return nil, err
		}
		wires = append(wires, w)
	}
	return wires, nil
}

// intersections maps every point all wires share to the summed number of
// steps each wire takes to first reach it.
func intersections(wires []Wire) map[Point]int {
	if len(wires) == 0 {
		return nil
	}
	shared := firstSteps(wires[0])
	for _, w := range wires[1:] {
		steps := firstSteps(w)
		for p, n := range shared {
			if m, ok := steps[p]; ok {
				shared[p] = n + m
			} else {
				delete(shared, p)
			}
		}
	}
	return shared
}

func firstSteps(w Wire) map[Point]int {
	steps := make(map[Point]int, len(w))
	for i, p := range w {
		if _, seen := steps[p]; !seen {
			steps[p] = i + 1
		}
	}
	return steps
}

// ClosestIntersection returns the smallest Manhattan distance from the
// origin to a point all wires cross.
func ClosestIntersection(wires []Wire) (int, error) {
	best := -1
	for p := range intersections(wires) {
		if d := p.Distance(); best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0, ErrNoIntersection
	}
	return best, nil
}

// ShortestIntersection returns the fewest combined steps the wires take to
// reach a common point.
func ShortestIntersection(wires []Wire) (int, error) {
	best := -1
	for _, n := range intersections(wires) {
		if best < 0 || n < best {
			best = n
		}
	}
	if best < 0 {
		return 0, ErrNoIntersection
	}
	return best, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
