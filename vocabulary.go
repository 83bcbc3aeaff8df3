package twisty

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
)

// Axis is one of the three rotation axes. X points right, Y up, Z to the
// front.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Descriptor is the rotation a move performs: Turns quarter turns about
// Axis, counter-clockwise (right-hand rule) when AxisSign is +1, applied to
// the inclusive 0-based layer range [Low, High] counted from the negative
// end of the axis.
type Descriptor struct {
	AxisSign int
	Axis     Axis
	Low      int
	High     int
	Turns    int
}

// Amount returns the signed number of quarter turns.
func (d Descriptor) Amount() int {
	return d.AxisSign * d.Turns
}

// Contains reports whether layer i is rotated by d.
func (d Descriptor) Contains(i int) bool {
	return i >= d.Low && i <= d.High
}

// IsWholeCube reports whether d rotates every layer of an order-n puzzle.
func (d Descriptor) IsWholeCube(order int) bool {
	return d.Low == 0 && d.High == order-1
}

// Valid reports whether d is well formed for an order-n puzzle.
func (d Descriptor) Valid(order int) bool {
	if d.Axis < AxisX || d.Axis > AxisZ {
		return false
	}
	if d.AxisSign != 1 && d.AxisSign != -1 {
		return false
	}
	if d.Turns != 1 && d.Turns != 2 {
		return false
	}
	return d.Low >= 0 && d.Low <= d.High && d.High < order
}

// rotationKey identifies a rotation up to the direction of a half turn.
type rotationKey struct {
	axis      Axis
	low, high int
	amount    int
}

func (d Descriptor) key() rotationKey {
	amount := d.Amount()
	if d.Turns == 2 {
		amount = 2
	}
	return rotationKey{axis: d.Axis, low: d.Low, high: d.High, amount: amount}
}

type layerKind int

const (
	kindHigh  layerKind = iota // outer layer at the positive end of the axis
	kindLow                    // outer layer at the negative end
	kindSlice                  // every inner layer
	kindWhole                  // every layer
)

// faceSpec describes an unprimed move letter.
type faceSpec struct {
	letter byte
	axis   Axis
	sign   int
	kind   layerKind
}

var faceSpecs = []faceSpec{
	{'U', AxisY, -1, kindHigh},
	{'D', AxisY, 1, kindLow},
	{'L', AxisX, 1, kindLow},
	{'R', AxisX, -1, kindHigh},
	{'F', AxisZ, -1, kindHigh},
	{'B', AxisZ, 1, kindLow},
	{'M', AxisX, 1, kindSlice},
	{'E', AxisY, 1, kindSlice},
	{'S', AxisZ, -1, kindSlice},
	{'X', AxisX, -1, kindWhole},
	{'Y', AxisY, -1, kindWhole},
	{'Z', AxisZ, -1, kindWhole},
}

var suffixes = []string{"", "'", "2"}

func specFor(letter byte) (faceSpec, bool) {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	for _, f := range faceSpecs {
		if f.letter == letter {
			return f, true
		}
	}
	return faceSpec{}, false
}

// layers returns the canonical layer range of f for an order-n puzzle.
func (f faceSpec) layers(order int, wide bool) (int, int) {
	switch f.kind {
	case kindHigh:
		if wide {
			return order - 2, order - 1
		}
		return order - 1, order - 1
	case kindLow:
		if wide {
			return 0, 1
		}
		return 0, 0
	case kindSlice:
		return 1, order - 2
	default:
		return 0, order - 1
	}
}

// prefixLayers converts a 1-based range counted from the face into 0-based
// layer indices.
func (f faceSpec) prefixLayers(order, a, b int) (int, int) {
	if f.kind == kindHigh {
		return order - b, order - a
	}
	return a - 1, b - 1
}

func (f faceSpec) descriptor(lo, hi int, suffix string) Descriptor {
	d := Descriptor{AxisSign: f.sign, Axis: f.axis, Low: lo, High: hi, Turns: 1}
	switch suffix {
	case "'":
		d.AxisSign = -f.sign
	case "2":
		d.Turns = 2
	}
	return d
}

// Vocabulary maps moves to rotation descriptors and back for one puzzle
// order. It is immutable once built.
type Vocabulary struct {
	order   int
	forward map[Move]Descriptor
	reverse map[rotationKey]Move
	logger  *log.Logger
}

// NewVocabulary builds the move tables for an order-n puzzle.
func NewVocabulary(order int, logger *log.Logger) (*Vocabulary, error) {
	if order < MinOrder || order > MaxOrder {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	if logger == nil {
		logger = defaultLogger()
	}

	v := &Vocabulary{
		order:   order,
		forward: make(map[Move]Descriptor),
		reverse: make(map[rotationKey]Move),
		logger:  logger,
	}

	for _, f := range faceSpecs {
		for _, suffix := range suffixes {
			for _, wide := range []bool{false, true} {
				// Wide slices and wide rotations mean nothing
				if wide && (f.kind == kindSlice || f.kind == kindWhole) {
					continue
				}
				letter := f.letter
				if wide {
					letter += 'a' - 'A'
				}
				m := Move(string(letter) + suffix)
				lo, hi := f.layers(order, wide)
				if !v.consistent(f, lo, hi, wide) {
					logger.Debug("skipping move", "move", m, "order", order, "low", lo, "high", hi)
					continue
				}
				d := f.descriptor(lo, hi, suffix)
				if prev, dup := v.reverse[d.key()]; dup {
					logger.Warn("duplicate rotation in move table", "move", m, "existing", prev, "order", order)
					continue
				}
				v.forward[m] = d
				v.reverse[d.key()] = m
			}
		}
	}

	return v, nil
}

// consistent checks a generated layer range: faces and wide moves must keep
// their boundary layer without covering the whole puzzle, slices must stay
// strictly inside.
func (v *Vocabulary) consistent(f faceSpec, lo, hi int, wide bool) bool {
	if lo < 0 || hi >= v.order || lo > hi {
		return false
	}
	switch f.kind {
	case kindHigh, kindLow:
		if wide && hi-lo+1 >= v.order {
			return false
		}
		return lo == 0 || hi == v.order-1
	case kindSlice:
		return lo > 0 && hi < v.order-1
	default:
		return lo == 0 && hi == v.order-1
	}
}

// Order returns the puzzle order the tables were built for.
func (v *Vocabulary) Order() int {
	return v.order
}

// Resolve returns the rotation performed by m. The undo marker is ignored.
func (v *Vocabulary) Resolve(m Move) (Descriptor, error) {
	base := m.Base()
	if d, ok := v.forward[base]; ok {
		return d, nil
	}

	n, err := parseNotation(string(base))
	if err != nil {
		return Descriptor{}, err
	}
	if n.low == 0 {
		return Descriptor{}, fmt.Errorf("%w: %q on order %d", ErrUnknownMove, m, v.order)
	}
	if n.high > v.order {
		return Descriptor{}, fmt.Errorf("%w: %q exceeds %d layers", ErrUnknownMove, m, v.order)
	}
	f, _ := specFor(n.letter)
	lo, hi := f.prefixLayers(v.order, n.low, n.high)
	return f.descriptor(lo, hi, n.suffix), nil
}

// MoveFor returns the canonical move performing d. Ranges with no face,
// wide, slice or rotation spelling get a numeric layer prefix.
func (v *Vocabulary) MoveFor(d Descriptor) (Move, bool) {
	if !d.Valid(v.order) {
		return "", false
	}
	if m, ok := v.reverse[d.key()]; ok {
		return m, true
	}

	// Counter-clockwise quarter turns read from the low face, everything
	// else from the high face.
	var f faceSpec
	switch d.Axis {
	case AxisX:
		f, _ = specFor('R')
	case AxisY:
		f, _ = specFor('U')
	default:
		f, _ = specFor('F')
	}
	if d.Turns == 1 && d.AxisSign == 1 {
		f, _ = specFor(opposite(f.letter))
	}

	a, b := d.Low+1, d.High+1
	if f.kind == kindHigh {
		a, b = v.order-d.High, v.order-d.Low
	}
	prefix := strconv.Itoa(a)
	if b != a {
		prefix += "-" + strconv.Itoa(b)
	}
	suffix := ""
	if d.Turns == 2 {
		suffix = "2"
	}
	return Move(prefix + string(f.letter) + suffix), true
}

// Moves returns every move in the static table, sorted.
func (v *Vocabulary) Moves() []Move {
	moves := make([]Move, 0, len(v.forward))
	for m := range v.forward {
		moves = append(moves, m)
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i] < moves[j] })
	return moves
}

func opposite(letter byte) byte {
	switch letter {
	case 'U':
		return 'D'
	case 'D':
		return 'U'
	case 'L':
		return 'R'
	case 'R':
		return 'L'
	case 'F':
		return 'B'
	case 'B':
		return 'F'
	}
	return letter
}

var (
	vocabMu    sync.Mutex
	vocabCache = map[int]*Vocabulary{}
)

// VocabularyFor returns the shared move tables for an order-n puzzle,
// building them on first use.
func VocabularyFor(order int, logger *log.Logger) (*Vocabulary, error) {
	vocabMu.Lock()
	defer vocabMu.Unlock()

	if v, ok := vocabCache[order]; ok {
		return v, nil
	}
	v, err := NewVocabulary(order, logger)
	if err != nil {
		return nil, err
	}
	vocabCache[order] = v
	return v, nil
}
