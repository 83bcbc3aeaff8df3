package twisty

import "math/rand/v2"

// Scrambler generates random-move scrambles.
type Scrambler struct {
	order int
	rng   *rand.Rand
}

// NewScrambler returns a scrambler for an order-n puzzle.
func NewScrambler(order int, seed uint64) *Scrambler {
	return &Scrambler{order: order, rng: rand.New(rand.NewPCG(seed, seed+1))}
}

// SetOrder switches the scrambler to an order-n puzzle. The random stream
// carries on where it was.
func (s *Scrambler) SetOrder(order int) {
	s.order = order
}

// DefaultScrambleLength returns the usual scramble length for an order.
func DefaultScrambleLength(order int) int {
	switch order {
	case 2:
		return 11
	case 3:
		return 25
	default:
		return 20 * (order - 2)
	}
}

const scrambleFaces = "UDLRFB"

var scrambleSuffixes = []string{"", "'", "2"}

// Scramble returns length random moves. No face is turned twice in a row,
// and a face is never repeated around a single turn of its opposite face,
// since R L R is just R2 L.
func (s *Scrambler) Scramble(length int) []Move {
	moves := make([]Move, 0, length)
	faces := make([]byte, 0, length)
	for len(moves) < length {
		face := scrambleFaces[s.rng.IntN(len(scrambleFaces))]
		n := len(faces)
		if n > 0 && faces[n-1] == face {
			continue
		}
		if n > 1 && faces[n-2] == face && faceAxis(faces[n-1]) == faceAxis(face) {
			continue
		}

		letter := face
		if s.order >= 4 && s.rng.IntN(3) == 0 {
			letter += 'a' - 'A'
		}
		suffix := scrambleSuffixes[s.rng.IntN(len(scrambleSuffixes))]
		moves = append(moves, Move(string(letter)+suffix))
		faces = append(faces, face)
	}
	return moves
}

func faceAxis(face byte) Axis {
	f, _ := specFor(face)
	return f.axis
}
