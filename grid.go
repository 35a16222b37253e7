package conway

// Point is a grid-cell coordinate. Unlike Point2D it is discrete: it names
// a whole cell rather than a position within one.
type Point struct {
	X, Y int
}

// Point2D converts a cell coordinate to grid-space. The result addresses
// the cell's min corner; add 1 to either axis for the opposite edge.
func (p Point) Point2D() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// PointMinMax returns the component-wise minimum and maximum corners of the
// rectangle spanned by a and b, whatever quadrant order the inputs arrive
// in. Useful for normalizing drag selections.
func PointMinMax(a, b Point) (min, max Point) {
	min, max = a, b
	if b.X < a.X {
		min.X, max.X = b.X, a.X
	}
	if b.Y < a.Y {
		min.Y, max.Y = b.Y, a.Y
	}
	return min, max
}

// Region is an axis-aligned rectangle of cells, inclusive on all four
// edges: Min and Max both name cells inside the region.
type Region struct {
	Min, Max Point
}

// RegionOf returns the region spanned by two corner cells in any order.
func RegionOf(a, b Point) Region {
	min, max := PointMinMax(a, b)
	return Region{Min: min, Max: max}
}

// Contains reports whether p lies inside the region.
func (r Region) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether the two regions share at least one cell.
func (r Region) Intersects(s Region) bool {
	return r.Min.X <= s.Max.X && r.Max.X >= s.Min.X &&
		r.Min.Y <= s.Max.Y && r.Max.Y >= s.Min.Y
}

// Width returns the region's cell count along x.
func (r Region) Width() int { return r.Max.X - r.Min.X + 1 }

// Height returns the region's cell count along y.
func (r Region) Height() int { return r.Max.Y - r.Min.Y + 1 }

// Center returns the region's midpoint in grid-space.
func (r Region) Center() Point2D {
	return Point2D{
		X: (float64(r.Min.X) + float64(r.Max.X) + 1) / 2,
		Y: (float64(r.Min.Y) + float64(r.Max.Y) + 1) / 2,
	}
}

// --- World ---

// leafCap is the bucket size of quadtree leaves. A leaf at minimum extent
// covers a 2x2 cell block, so it can never overflow the cap.
const leafCap = 16

// qnode covers the half-open square [cx-half, cx+half) x [cy-half, cy+half),
// with half always a power of two. kids == nil marks a leaf holding up to
// leafCap points in pts.
type qnode struct {
	cx, cy int
	half   int
	pts    []Point
	kids   *[4]*qnode
}

func (n *qnode) contains(p Point) bool {
	return p.X >= n.cx-n.half && p.X < n.cx+n.half &&
		p.Y >= n.cy-n.half && p.Y < n.cy+n.half
}

func (n *qnode) region() Region {
	return Region{
		Min: Point{X: n.cx - n.half, Y: n.cy - n.half},
		Max: Point{X: n.cx + n.half - 1, Y: n.cy + n.half - 1},
	}
}

// quadrant indexes kids: bit 0 set for x >= cx, bit 1 set for y >= cy.
func (n *qnode) quadrant(p Point) int {
	qi := 0
	if p.X >= n.cx {
		qi |= 1
	}
	if p.Y >= n.cy {
		qi |= 2
	}
	return qi
}

func (n *qnode) childAt(qi int) *qnode {
	h := n.half / 2
	ccx, ccy := n.cx-h, n.cy-h
	if qi&1 != 0 {
		ccx = n.cx + h
	}
	if qi&2 != 0 {
		ccy = n.cy + h
	}
	return &qnode{cx: ccx, cy: ccy, half: h}
}

func (n *qnode) insert(p Point) bool {
	if n.kids == nil {
		for _, q := range n.pts {
			if q == p {
				return false
			}
		}
		if len(n.pts) < leafCap || n.half == 1 {
			n.pts = append(n.pts, p)
			return true
		}
		// Overflow: push the bucket down one level.
		n.kids = new([4]*qnode)
		for _, q := range n.pts {
			n.insertChild(q)
		}
		n.pts = nil
	}
	return n.insertChild(p)
}

func (n *qnode) insertChild(p Point) bool {
	qi := n.quadrant(p)
	if n.kids[qi] == nil {
		n.kids[qi] = n.childAt(qi)
	}
	return n.kids[qi].insert(p)
}

func (n *qnode) remove(p Point) bool {
	if n.kids == nil {
		for i, q := range n.pts {
			if q == p {
				n.pts[i] = n.pts[len(n.pts)-1]
				n.pts = n.pts[:len(n.pts)-1]
				return true
			}
		}
		return false
	}
	qi := n.quadrant(p)
	kid := n.kids[qi]
	if kid == nil || !kid.remove(p) {
		return false
	}
	if kid.empty() {
		n.kids[qi] = nil
	}
	return true
}

func (n *qnode) empty() bool {
	if n.kids == nil {
		return len(n.pts) == 0
	}
	for _, kid := range n.kids {
		if kid != nil {
			return false
		}
	}
	return true
}

func (n *qnode) alive(p Point) bool {
	for n != nil {
		if n.kids == nil {
			for _, q := range n.pts {
				if q == p {
					return true
				}
			}
			return false
		}
		n = n.kids[n.quadrant(p)]
	}
	return false
}

func (n *qnode) forEach(fn func(Point)) {
	if n == nil {
		return
	}
	if n.kids == nil {
		for _, p := range n.pts {
			fn(p)
		}
		return
	}
	for _, kid := range n.kids {
		kid.forEach(fn)
	}
}

func (n *qnode) forEachIn(r Region, fn func(Point)) {
	if n == nil || !r.Intersects(n.region()) {
		return
	}
	if n.kids == nil {
		for _, p := range n.pts {
			if r.Contains(p) {
				fn(p)
			}
		}
		return
	}
	for _, kid := range n.kids {
		kid.forEachIn(r, fn)
	}
}

func (n *qnode) clone() *qnode {
	if n == nil {
		return nil
	}
	c := &qnode{cx: n.cx, cy: n.cy, half: n.half}
	if n.kids == nil {
		c.pts = append([]Point(nil), n.pts...)
		return c
	}
	c.kids = new([4]*qnode)
	for i, kid := range n.kids {
		c.kids[i] = kid.clone()
	}
	return c
}

// World is the set of live cells on an unbounded grid, held in a point
// quadtree so that region queries only touch the occupied corners of the
// plane. The zero value is an empty world, but NewWorld is the usual way
// to start one.
//
// A World is not safe for concurrent mutation. The updater owns the live
// World and hands out Snapshot copies, which are safe to read from any
// goroutine as long as nobody writes to them.
type World struct {
	root *qnode
	pop  int
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{}
}

// initialRootHalf sizes the root region around the first live cell. Most
// seeds fit without regrowing.
const initialRootHalf = 16

// Set marks p alive.
func (w *World) Set(p Point) {
	if w.root == nil {
		w.root = &qnode{cx: p.X, cy: p.Y, half: initialRootHalf}
	}
	for !w.root.contains(p) {
		w.grow(p)
	}
	if w.root.insert(p) {
		w.pop++
	}
}

// grow doubles the root region toward p, re-rooting the old tree as one
// quadrant of the new root.
func (w *World) grow(p Point) {
	old := w.root
	cx, cy := old.cx-old.half, old.cy-old.half
	if p.X >= old.cx {
		cx = old.cx + old.half
	}
	if p.Y >= old.cy {
		cy = old.cy + old.half
	}
	root := &qnode{cx: cx, cy: cy, half: 2 * old.half, kids: new([4]*qnode)}
	if !old.empty() {
		root.kids[root.quadrant(Point{X: old.cx, Y: old.cy})] = old
	}
	w.root = root
}

// Unset marks p dead.
func (w *World) Unset(p Point) {
	if w.root == nil || !w.root.contains(p) {
		return
	}
	if w.root.remove(p) {
		w.pop--
	}
}

// Toggle flips the cell at p and reports its new state.
func (w *World) Toggle(p Point) bool {
	if w.Alive(p) {
		w.Unset(p)
		return false
	}
	w.Set(p)
	return true
}

// Alive reports whether the cell at p is live.
func (w *World) Alive(p Point) bool {
	if w.root == nil || !w.root.contains(p) {
		return false
	}
	return w.root.alive(p)
}

// Population returns the number of live cells.
func (w *World) Population() int {
	return w.pop
}

// Reset kills every cell.
func (w *World) Reset() {
	w.root = nil
	w.pop = 0
}

// ForEach calls fn for every live cell, in no particular order.
func (w *World) ForEach(fn func(Point)) {
	w.root.forEach(fn)
}

// ForEachIn calls fn for every live cell inside r, in no particular order.
// Subtrees that fall entirely outside r are skipped.
func (w *World) ForEachIn(r Region, fn func(Point)) {
	w.root.forEachIn(r, fn)
}

// Points returns the live cells in no particular order.
func (w *World) Points() []Point {
	if w.pop == 0 {
		return nil
	}
	pts := make([]Point, 0, w.pop)
	w.ForEach(func(p Point) {
		pts = append(pts, p)
	})
	return pts
}

// Bounds returns the tight bounding region of the live cells, or false when
// the world is empty.
func (w *World) Bounds() (Region, bool) {
	if w.pop == 0 {
		return Region{}, false
	}
	first := true
	var r Region
	w.ForEach(func(p Point) {
		if first {
			r = Region{Min: p, Max: p}
			first = false
			return
		}
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	})
	return r, true
}

// Snapshot returns a deep copy of the world. The copy shares nothing with
// the original, so the two sides of a channel can use them independently.
func (w *World) Snapshot() *World {
	return &World{root: w.root.clone(), pop: w.pop}
}
