package twisty

// Predefined sequences for demos and tests.
//
// Example:
//
//	s.PushSequence(twisty.SexyMove)
var (
	// Sexy move: R U R' U' - one of the most common algorithms
	SexyMove = []Move{"R", "U", "R'", "U'"}

	// Inverse sexy move: U R U' R'
	InverseSexyMove = []Move{"U", "R", "U'", "R'"}

	// T-perm swaps two corners and two edges
	TPerm = []Move{"R", "U", "R'", "U'", "R'", "F", "R2", "U'", "R'", "U'", "R", "U", "R'", "F'"}

	// Superflip flips every edge of a 3x3 in place
	Superflip = []Move{"U", "R2", "F", "B", "R", "B2", "R", "U2", "L", "B2", "R", "U'", "D'", "R2", "F", "R'", "L", "B2", "U2", "F2"}
)

// Invert returns the sequence that undoes moves.
func Invert(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for i := len(moves) - 1; i >= 0; i-- {
		out = append(out, moves[i].Inverse())
	}
	return out
}
