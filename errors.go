package twisty

import "errors"

// Sentinel errors for the twisty package.
var (
	// Notation errors
	ErrUnknownMove     = errors.New("twisty: unknown move")
	ErrInvalidNotation = errors.New("twisty: invalid move notation")

	// Puzzle errors
	ErrInvalidOrder = errors.New("twisty: invalid puzzle order")
	ErrBusy         = errors.New("twisty: moves pending")
)
