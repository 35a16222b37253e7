package conway

import (
	"fmt"
	"strings"
)

// Rule is a totalistic cellular-automaton rule in B/S notation: a dead
// cell with a neighbor count in B is born, a live cell with a count in S
// survives, and everything else dies. Rules are immutable values.
type Rule struct {
	birth   [9]bool
	survive [9]bool
}

// DefaultRule returns Conway's classic B3/S23.
func DefaultRule() Rule {
	var r Rule
	r.birth[3] = true
	r.survive[2] = true
	r.survive[3] = true
	return r
}

// ParseRule parses a rulestring like "B3/S23" or "b36/s23". Both parts
// must be present, in B/S order; counts are single digits 0 through 8.
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("conway: invalid rule %q: want B.../S...", s)
	}
	if err := parseRulePart(parts[0], 'B', &r.birth); err != nil {
		return Rule{}, fmt.Errorf("conway: invalid rule %q: %v", s, err)
	}
	if err := parseRulePart(parts[1], 'S', &r.survive); err != nil {
		return Rule{}, fmt.Errorf("conway: invalid rule %q: %v", s, err)
	}
	return r, nil
}

func parseRulePart(part string, prefix byte, counts *[9]bool) error {
	if part == "" || (part[0] != prefix && part[0] != prefix+'a'-'A') {
		return fmt.Errorf("missing %c part", prefix)
	}
	for i := 1; i < len(part); i++ {
		c := part[i]
		if c < '0' || c > '8' {
			return fmt.Errorf("bad neighbor count %q", string(c))
		}
		counts[c-'0'] = true
	}
	return nil
}

// String renders the rule in canonical uppercase B/S notation.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for i, on := range r.birth {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	b.WriteString("/S")
	for i, on := range r.survive {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	return b.String()
}

// Born reports whether a dead cell with n live neighbors becomes live.
func (r Rule) Born(n int) bool {
	return n >= 0 && n <= 8 && r.birth[n]
}

// Survives reports whether a live cell with n live neighbors stays live.
func (r Rule) Survives(n int) bool {
	return n >= 0 && n <= 8 && r.survive[n]
}

// Step computes the next generation of w. Only cells adjacent to a live
// cell can change, so the work is proportional to the population rather
// than any notion of board area. w is not modified.
func (r Rule) Step(w *World) *World {
	counts := make(map[Point]uint8, w.Population()*3)
	w.ForEach(func(p Point) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				counts[Point{X: p.X + dx, Y: p.Y + dy}]++
			}
		}
	})

	next := NewWorld()
	for p, n := range counts {
		if w.Alive(p) {
			if r.survive[n] {
				next.Set(p)
			}
		} else if r.birth[n] {
			next.Set(p)
		}
	}
	if r.survive[0] {
		// Isolated cells never appear in the neighbor counts.
		w.ForEach(func(p Point) {
			if _, seen := counts[p]; !seen {
				next.Set(p)
			}
		})
	}
	return next
}
