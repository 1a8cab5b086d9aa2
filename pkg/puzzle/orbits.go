package puzzle

import (
	"fmt"
	"strings"
)

// Root is the universal center of mass every orbit chain starts from.
const Root = "COM"

// OrbitMap records which object each object directly orbits.
type OrbitMap struct {
	parent map[string]string
}

// ParseOrbits reads lines of the form "A)B", meaning B orbits A.
func ParseOrbits(text string) (*OrbitMap, error) {
	m := &OrbitMap{parent: make(map[string]string)}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		center, object, ok := strings.Cut(line, ")")
		if !ok || center == "" || object == "" {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadInput, i+1, line)
		}
		if prev, dup := m.parent[object]; dup {
			return nil, fmt.Errorf("%w: %s orbits both %s and %s", ErrBadInput, object, prev, center)
		}
		m.parent[object] = center
	}
	return m, nil
}

// chain returns the objects from Root down to name, inclusive. ok is false
// if name is unknown, not connected to Root, or part of a cycle.
func (m *OrbitMap) chain(name string) ([]string, bool) {
	var chain []string
	for cur := name; ; {
		chain = append(chain, cur)
		if cur == Root {
			break
		}
		next, ok := m.parent[cur]
		if !ok || len(chain) > len(m.parent)+1 {
			return nil, false
		}
		cur = next
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, true
}

// CountOrbits returns the number of direct and indirect orbits of every
// object connected to Root.
func (m *OrbitMap) CountOrbits() int {
	depth := map[string]int{Root: 0}
	var walk func(string) (int, bool)
	walk = func(name string) (int, bool) {
		if d, ok := depth[name]; ok {
			return d, d >= 0
		}
		depth[name] = -1 // cycle marker
		p, ok := m.parent[name]
		if !ok {
			return 0, false
		}
		d, ok := walk(p)
		if !ok {
			return 0, false
		}
		depth[name] = d + 1
		return d + 1, true
	}

	total := 0
	for object := range m.parent {
		if d, ok := walk(object); ok {
			total += d
		}
	}
	return total
}

// ShortestPath returns the number of orbital transfers needed to move from
// the object begin orbits to the object end orbits.
func (m *OrbitMap) ShortestPath(begin, end string) (int, error) {
	a, ok := m.chain(begin)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownObject, begin)
	}
	b, ok := m.chain(end)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownObject, end)
	}

	common := 0
	for common < len(a) && common < len(b) && a[common] == b[common] {
		common++
	}
	return (len(a) - 1) + (len(b) - 1) - 2*common, nil
}
