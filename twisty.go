// Package twisty models an N×N×N twisty puzzle: cubie geometry, move
// notation, gesture resolution, the pending-move queue with undo history,
// and the frame-driven scheduler that animates moves and times solves.
//
// # Features
//
//   - Move vocabulary for faces, wide moves, slices, whole-cube rotations and
//     numeric layer ranges, for any order from 2 up
//   - Exact cubie lattice with facelet output and solved detection
//   - Peephole consolidation of same-axis queued moves
//   - Undo/redo history with savepoints
//   - Gesture resolution from screen coordinates to layer rotations
//   - Scramble / inspect / solve timer
//
// # Quick Start
//
//	s, err := twisty.NewScheduler(twisty.WithOrder(3), twisty.WithInstant(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s.PushSequence("R U R' U'")
//	for s.Tick(time.Now()) {
//	}
//
//	fmt.Println(s.Puzzle().Facelets())
//	fmt.Println("Solved:", s.Puzzle().IsSolved())
//
// # Frame Loop
//
// Scheduler.Tick is driven by the host's frame callback. It returns true
// while anything is pending (a rotation in flight, queued moves, a fading
// status message, or a running timer); an idle puzzle needs no frames.
//
// # Notation
//
//	R U F L D B   outer faces, ' reverses, 2 turns half way
//	r u f l d b   face plus the adjacent inner layer
//	M E S         inner slices (following L, D and F)
//	X Y Z         whole-cube rotations (following R, U and F)
//	2-3L 2R       explicit 1-based layer ranges counted from the face
//	|             savepoint
package twisty
