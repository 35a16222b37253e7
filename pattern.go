package conway

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Pattern is a named arrangement of live cells, as loaded from an RLE or
// plaintext pattern file. Cells are positions relative to the pattern's
// own top-left corner; stamp them into a world with AppendTo.
type Pattern struct {
	Name     string
	Comments []string
	// Rule is the rulestring declared by the file, or "" when the file
	// does not name one.
	Rule  string
	Cells []Point
}

// AppendTo stamps the pattern into w with its origin at `at`.
func (p Pattern) AppendTo(w *World, at Point) {
	for _, c := range p.Cells {
		w.Set(Point{X: at.X + c.X, Y: at.Y + c.Y})
	}
}

// Bounds returns the tight bounding region of the pattern's cells, or
// false for an empty pattern.
func (p Pattern) Bounds() (Region, bool) {
	if len(p.Cells) == 0 {
		return Region{}, false
	}
	r := Region{Min: p.Cells[0], Max: p.Cells[0]}
	for _, c := range p.Cells[1:] {
		if c.X < r.Min.X {
			r.Min.X = c.X
		}
		if c.X > r.Max.X {
			r.Max.X = c.X
		}
		if c.Y < r.Min.Y {
			r.Min.Y = c.Y
		}
		if c.Y > r.Max.Y {
			r.Max.Y = c.Y
		}
	}
	return r, true
}

// Normalized returns a copy of the pattern translated so its bounding
// region starts at (0, 0).
func (p Pattern) Normalized() Pattern {
	r, ok := p.Bounds()
	if !ok || (r.Min == Point{}) {
		return p
	}
	cells := make([]Point, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = Point{X: c.X - r.Min.X, Y: c.Y - r.Min.Y}
	}
	q := p
	q.Cells = cells
	return q
}

// PatternFromWorld captures the live cells of w as a pattern normalized
// to the origin.
func PatternFromWorld(w *World, name string) Pattern {
	p := Pattern{Name: name, Cells: w.Points()}
	return p.Normalized()
}

// LoadPatternFile reads and parses a pattern file. The format is chosen
// by extension (.rle, .cells, .txt) and sniffed from the content for
// anything else.
func LoadPatternFile(path string) (Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pattern{}, fmt.Errorf("conway: read pattern: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rle":
		return ParseRLE(data)
	case ".cells", ".txt":
		return ParsePlaintext(data)
	}
	return ParsePattern(data)
}

// ParsePattern sniffs the format of data and parses it. RLE is recognized
// by its "#" comments or "x = ..." header, plaintext by "!" comments or a
// row of cell characters.
func ParsePattern(data []byte) (Pattern, error) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line[0] == '!':
			return ParsePlaintext(data)
		case line[0] == '#':
			return ParseRLE(data)
		case line[0] == 'x':
			return ParseRLE(data)
		case strings.IndexFunc(line, isPlaintextCell) == 0:
			return ParsePlaintext(data)
		}
		return Pattern{}, fmt.Errorf("conway: unrecognized pattern format")
	}
	return Pattern{}, fmt.Errorf("conway: empty pattern data")
}

func isPlaintextCell(r rune) bool {
	return r == '.' || r == 'O' || r == 'o' || r == '*'
}

// --- RLE ---

// ParseRLE parses a run-length-encoded pattern:
//
//	#N Glider
//	x = 3, y = 3, rule = B3/S23
//	bob$2bo$3o!
//
// "b" and "." are dead, any other letter is live, "$" ends a row and "!"
// ends the pattern. Run counts apply to the tag that follows them.
func ParseRLE(data []byte) (Pattern, error) {
	var p Pattern
	var body strings.Builder
	headerSeen := false

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line[0] == '#' {
			if len(line) > 1 {
				switch line[1] {
				case 'N':
					p.Name = strings.TrimSpace(line[2:])
				case 'C', 'c', 'O':
					p.Comments = append(p.Comments, strings.TrimSpace(line[2:]))
				}
			}
			continue
		}
		if !headerSeen {
			if line[0] != 'x' {
				return Pattern{}, fmt.Errorf("conway: RLE data missing x/y header")
			}
			if err := parseRLEHeader(line, &p); err != nil {
				return Pattern{}, err
			}
			headerSeen = true
			continue
		}
		body.WriteString(line)
	}
	if !headerSeen {
		return Pattern{}, fmt.Errorf("conway: RLE data missing x/y header")
	}
	if err := parseRLEBody(body.String(), &p); err != nil {
		return Pattern{}, err
	}
	return p, nil
}

// parseRLEHeader handles "x = 3, y = 3, rule = B3/S23". The declared
// dimensions are advisory; the body's cells are authoritative.
func parseRLEHeader(line string, p *Pattern) error {
	for _, field := range strings.Split(line, ",") {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return fmt.Errorf("conway: bad RLE header field %q", strings.TrimSpace(field))
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		switch k {
		case "x", "y":
			if _, err := strconv.Atoi(v); err != nil {
				return fmt.Errorf("conway: bad RLE header dimension %s = %q", k, v)
			}
		case "rule":
			if _, err := ParseRule(v); err != nil {
				return err
			}
			p.Rule = v
		}
	}
	return nil
}

func parseRLEBody(body string, p *Pattern) error {
	x, y, run := 0, 0, 0
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			run = run*10 + int(r-'0')
		case r == 'b' || r == '.':
			x += max(run, 1)
			run = 0
		case r == '$':
			y += max(run, 1)
			x = 0
			run = 0
		case r == '!':
			return nil
		case r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
			n := max(run, 1)
			for i := 0; i < n; i++ {
				p.Cells = append(p.Cells, Point{X: x, Y: y})
				x++
			}
			run = 0
		case r == ' ' || r == '\t' || r == '\r':
			// Stray whitespace inside the body is tolerated.
		default:
			return fmt.Errorf("conway: bad RLE tag %q", string(r))
		}
	}
	return fmt.Errorf("conway: RLE body not terminated with !")
}

// EncodeRLE renders a pattern back to RLE, normalized to the origin, with
// body lines wrapped at 70 characters.
func EncodeRLE(p Pattern) []byte {
	p = p.Normalized()
	var b strings.Builder
	if p.Name != "" {
		fmt.Fprintf(&b, "#N %s\n", p.Name)
	}
	for _, c := range p.Comments {
		fmt.Fprintf(&b, "#C %s\n", c)
	}

	rule := p.Rule
	if rule == "" {
		rule = DefaultRule().String()
	}
	r, ok := p.Bounds()
	if !ok {
		fmt.Fprintf(&b, "x = 0, y = 0, rule = %s\n!\n", rule)
		return []byte(b.String())
	}
	fmt.Fprintf(&b, "x = %d, y = %d, rule = %s\n", r.Width(), r.Height(), rule)

	cells := append([]Point(nil), p.Cells...)
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})

	w := rleWriter{b: &b}
	cursorX, cursorY := 0, 0
	live := 0
	flush := func() {
		w.run(live, 'o')
		cursorX += live
		live = 0
	}
	for _, c := range cells {
		if c.Y != cursorY {
			flush()
			w.run(c.Y-cursorY, '$')
			cursorY = c.Y
			cursorX = 0
		}
		if c.X != cursorX+live {
			flush()
			w.run(c.X-cursorX, 'b')
			cursorX = c.X
		}
		live++
	}
	flush()
	w.run(1, '!')
	b.WriteByte('\n')
	return []byte(b.String())
}

// rleWriter emits runs with standard 70-column wrapping.
type rleWriter struct {
	b    *strings.Builder
	line int
}

func (w *rleWriter) run(n int, tag byte) {
	if n <= 0 {
		return
	}
	s := ""
	if n > 1 {
		s = strconv.Itoa(n)
	}
	s += string(tag)
	if w.line+len(s) > 70 {
		w.b.WriteByte('\n')
		w.line = 0
	}
	w.b.WriteString(s)
	w.line += len(s)
}

// --- Plaintext ---

// ParsePlaintext parses a .cells pattern: "!" lines are comments, "."
// is dead, "O", "o" and "*" are live. Every non-comment line is one row,
// blank rows included.
func ParsePlaintext(data []byte) (Pattern, error) {
	var p Pattern
	y := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.HasPrefix(line, "!") {
			c := strings.TrimSpace(line[1:])
			if name, ok := strings.CutPrefix(c, "Name:"); ok {
				p.Name = strings.TrimSpace(name)
			} else if c != "" {
				p.Comments = append(p.Comments, c)
			}
			continue
		}
		for x, r := range line {
			switch r {
			case '.', ' ':
			case 'O', 'o', '*':
				p.Cells = append(p.Cells, Point{X: x, Y: y})
			default:
				return Pattern{}, fmt.Errorf("conway: bad plaintext cell %q", string(r))
			}
		}
		y++
	}
	return p, nil
}
