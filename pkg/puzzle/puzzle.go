// Package puzzle holds small input transforms that ship alongside the
// Intcode machine: rocket fuel, crossed wires, password ranges and orbit
// maps. None of them use the machine.
package puzzle

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrBadInput       = errors.New("bad puzzle input")
	ErrNoIntersection = errors.New("wires do not cross")
	ErrUnknownObject  = errors.New("object not in orbit map")
)

// ParseInts reads one integer per non-empty line.
func ParseInts(text string) ([]int64, error) {
	var values []int64
	scanner := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			continue
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadInput, line, s)
		}
		values = append(values, v)
	}
	return values, scanner.Err()
}
