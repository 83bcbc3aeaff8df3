package twisty

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// CubieKind classifies a cubie by how many of its coordinates sit on the
// outer boundary.
type CubieKind int

const (
	Corner CubieKind = iota // three boundary coordinates
	Edge                    // two
	Center                  // one
)

func (k CubieKind) String() string {
	switch k {
	case Corner:
		return "corner"
	case Edge:
		return "edge"
	case Center:
		return "center"
	default:
		return "unknown"
	}
}

// Cubie is one visible piece of the lattice. Positions are doubled lattice
// coordinates centred on the origin, in [-(n-1), n-1] with step 2, so every
// rotation keeps them integral.
type Cubie struct {
	Index int
	Kind  CubieKind
	Home  [3]int
	Pos   [3]int
	Rot   Mat3
}

// Sticker is one coloured face of a cubie.
type Sticker struct {
	Normal [3]int // outward normal in the cubie's home frame
	Face   byte   // face letter the sticker belongs to when solved
}

// Stickers returns the stickers of c in an order-n puzzle.
func (c Cubie) Stickers(order int) []Sticker {
	var out []Sticker
	for axis := 0; axis < 3; axis++ {
		if abs(c.Home[axis]) != order-1 {
			continue
		}
		var n [3]int
		n[axis] = sign(c.Home[axis])
		out = append(out, Sticker{Normal: n, Face: faceForNormal(n)})
	}
	return out
}

// Transform is the render state of one cubie.
type Transform struct {
	Index    int
	Position Vec3          // world-space centre
	Rotation [3][3]float64 // world-space orientation
	Euler    Vec3          // intrinsic X, Y, Z angles of Rotation
}

// Puzzle is the cubie lattice of an order-n puzzle. Cubies are stored
// corners first, then edges, then centers; interior pieces are not built.
type Puzzle struct {
	layout Layout
	cubies []Cubie

	edgeStart   int
	centerStart int

	// traversal is a shuffled order of the corners and edges for the solved
	// check, fixed for the life of the puzzle.
	traversal []int
	// adjacent[a] is the corner that differs from cubie 0 only along axis a.
	adjacent [3]int

	tolerance float64
}

// solvedTolerance is how far, in radians, two orientations may differ and
// still count as equal.
const solvedTolerance = 0.2

// NewPuzzle builds a solved puzzle. seed fixes the solved-check traversal.
func NewPuzzle(layout Layout, seed uint64) (*Puzzle, error) {
	n := layout.Order
	if n < MinOrder || n > MaxOrder {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, n)
	}

	var corners, edges, centers []Cubie
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				home := [3]int{2*i - (n - 1), 2*j - (n - 1), 2*k - (n - 1)}
				c := Cubie{Home: home, Pos: home, Rot: Identity()}
				switch boundaryCount(home, n) {
				case 3:
					c.Kind = Corner
					corners = append(corners, c)
				case 2:
					c.Kind = Edge
					edges = append(edges, c)
				case 1:
					c.Kind = Center
					centers = append(centers, c)
				}
			}
		}
	}

	p := &Puzzle{
		layout:      layout,
		edgeStart:   len(corners),
		centerStart: len(corners) + len(edges),
		tolerance:   solvedTolerance,
	}
	p.cubies = append(append(append(p.cubies, corners...), edges...), centers...)
	for i := range p.cubies {
		p.cubies[i].Index = i
	}

	ref := p.cubies[0].Home
	for a := 0; a < 3; a++ {
		want := ref
		want[a] = -want[a]
		for i := 0; i < p.edgeStart; i++ {
			if p.cubies[i].Home == want {
				p.adjacent[a] = i
			}
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	p.traversal = rng.Perm(p.centerStart)

	return p, nil
}

func boundaryCount(v [3]int, order int) int {
	count := 0
	for _, u := range v {
		if abs(u) == order-1 {
			count++
		}
	}
	return count
}

// Order returns the number of layers along each axis.
func (p *Puzzle) Order() int {
	return p.layout.Order
}

// Layout returns the world-space layout.
func (p *Puzzle) Layout() Layout {
	return p.layout
}

// Ranges returns the index where edges start, where centers start, and the
// cubie count.
func (p *Puzzle) Ranges() (int, int, int) {
	return p.edgeStart, p.centerStart, len(p.cubies)
}

// Cubies returns a copy of the lattice.
func (p *Puzzle) Cubies() []Cubie {
	out := make([]Cubie, len(p.cubies))
	copy(out, p.cubies)
	return out
}

// CopyState takes positions and rotations from a puzzle of the same order.
func (p *Puzzle) CopyState(from *Puzzle) bool {
	if from == nil || from.Order() != p.Order() {
		return false
	}
	for i := range p.cubies {
		p.cubies[i].Pos = from.cubies[i].Pos
		p.cubies[i].Rot = from.cubies[i].Rot
	}
	return true
}

// layerOf returns the layer index of a doubled coordinate.
func (p *Puzzle) layerOf(u int) int {
	return (u + p.layout.Order - 1) / 2
}

// Apply performs a completed rotation.
func (p *Puzzle) Apply(d Descriptor) {
	r := quarterTurn(d.Axis, d.Amount())
	for i := range p.cubies {
		c := &p.cubies[i]
		if !d.Contains(p.layerOf(c.Pos[d.Axis])) {
			continue
		}
		c.Pos = r.Apply(c.Pos)
		c.Rot = r.Mul(c.Rot)
	}
}

// Transforms returns the render state of every cubie. Cubies in the layers
// of inflight are turned by its current angle.
func (p *Puzzle) Transforms(inflight *Rotation) []Transform {
	var partial [3][3]float64
	if inflight != nil {
		partial = axisRotation(inflight.Descriptor.Axis, float64(inflight.Descriptor.AxisSign)*inflight.Angle)
	}

	out := make([]Transform, len(p.cubies))
	for i, c := range p.cubies {
		pos := Vec3{p.layout.world(c.Pos[0]), p.layout.world(c.Pos[1]), p.layout.world(c.Pos[2])}
		rot := c.Rot.Float()
		if inflight != nil && inflight.Descriptor.Contains(p.layerOf(c.Pos[inflight.Descriptor.Axis])) {
			pos = applyFloat(partial, pos)
			rot = mulFloat(partial, rot)
		}
		out[i] = Transform{Index: c.Index, Position: pos, Rotation: rot, Euler: eulerXYZ(rot)}
	}
	return out
}

// faceFrame is a face's outward normal plus the directions of increasing
// column and row when the face is viewed from outside.
type faceFrame struct {
	letter              byte
	normal, right, down [3]int
}

var faceFrames = []faceFrame{
	{'U', [3]int{0, 1, 0}, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{'R', [3]int{1, 0, 0}, [3]int{0, 0, -1}, [3]int{0, -1, 0}},
	{'F', [3]int{0, 0, 1}, [3]int{1, 0, 0}, [3]int{0, -1, 0}},
	{'D', [3]int{0, -1, 0}, [3]int{1, 0, 0}, [3]int{0, 0, -1}},
	{'L', [3]int{-1, 0, 0}, [3]int{0, 0, 1}, [3]int{0, -1, 0}},
	{'B', [3]int{0, 0, -1}, [3]int{-1, 0, 0}, [3]int{0, -1, 0}},
}

// Facelets returns the sticker labels of every face in URFDLB order, order²
// characters per face in row-major order.
//
// U is viewed from above with B at the top, D from below with F at the top,
// and the side faces with U at the top.
func (p *Puzzle) Facelets() string {
	n := p.layout.Order
	at := make(map[[3]int]int, len(p.cubies))
	for i, c := range p.cubies {
		at[c.Pos] = i
	}

	var b strings.Builder
	b.Grow(6 * n * n)
	for _, f := range faceFrames {
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				var pos [3]int
				for a := 0; a < 3; a++ {
					pos[a] = f.normal[a]*(n-1) + f.right[a]*(2*col-(n-1)) + f.down[a]*(2*row-(n-1))
				}
				i, ok := at[pos]
				if !ok {
					b.WriteByte('?')
					continue
				}
				local := p.cubies[i].Rot.Transpose().Apply(f.normal)
				b.WriteByte(faceForNormal(local))
			}
		}
	}
	return b.String()
}

// IsSolved reports whether every face shows a single colour, in any
// whole-cube orientation.
//
// Corners and edges must share the orientation of cubie 0, which pins their
// positions too since a cubie's position is always its rotation applied to
// its home. Centers may be permuted within a face, so they are checked only
// for lying on the right face.
func (p *Puzzle) IsSolved() bool {
	ref := p.cubies[0]
	refAngles := eulerXYZ(ref.Rot.Float())

	for _, i := range p.traversal {
		angles := eulerXYZ(p.cubies[i].Rot.Float())
		for a := 0; a < 3; a++ {
			if !sameAngle(angles[a], refAngles[a], p.tolerance) {
				return false
			}
		}
	}

	if p.centerStart == len(p.cubies) {
		return true
	}

	// Work out where each of the reference's local axes points now from
	// the displacement to its neighbouring corners.
	var worldAxis, worldSign [3]int
	for a := 0; a < 3; a++ {
		adj := p.cubies[p.adjacent[a]]
		home := adj.Home[a] - ref.Home[a]
		found := false
		for w := 0; w < 3; w++ {
			d := adj.Pos[w] - ref.Pos[w]
			if d == 0 {
				continue
			}
			if found || abs(d) != abs(home) {
				return false
			}
			worldAxis[a], worldSign[a] = w, sign(d)*sign(home)
			found = true
		}
		if !found {
			return false
		}
	}

	span := 2 * (p.layout.Order - 1)
	for i := p.centerStart; i < len(p.cubies); i++ {
		c := p.cubies[i]
		a := centerAxis(c.Home, p.layout.Order)
		w := worldAxis[a]
		offset := c.Pos[w] - ref.Pos[w]
		if c.Home[a] == ref.Home[a] {
			if offset != 0 {
				return false
			}
		} else if offset != worldSign[a]*sign(c.Home[a]-ref.Home[a])*span {
			return false
		}
	}
	return true
}

// centerAxis returns the axis on which a center cubie touches the boundary.
func centerAxis(home [3]int, order int) int {
	for a := 0; a < 3; a++ {
		if abs(home[a]) == order-1 {
			return a
		}
	}
	return 0
}

// String returns the facelets as an unfolded net.
func (p *Puzzle) String() string {
	n := p.layout.Order
	f := p.Facelets()
	face := func(i, row int) string {
		start := i*n*n + row*n
		return strings.Join(strings.Split(f[start:start+n], ""), " ")
	}
	pad := strings.Repeat(" ", 2*n)

	var b strings.Builder
	// U
	for row := 0; row < n; row++ {
		b.WriteString(pad + face(0, row) + "\n")
	}
	// L F R B
	for row := 0; row < n; row++ {
		b.WriteString(face(4, row) + " " + face(2, row) + " " + face(1, row) + " " + face(5, row) + "\n")
	}
	// D
	for row := 0; row < n; row++ {
		b.WriteString(pad + face(3, row) + "\n")
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
