// Package hanoi provides the Tower of Hanoi puzzle rules and scoring.
//
// The hanoi package implements:
//   - Board state and legal-move application
//   - Completion detection
//   - Optimal move count (2^n - 1)
//   - Accuracy and score formulas used by the match runtime
//
// Core Types:
//
// Board holds the three pegs with disks ordered bottom-to-top. Apply
// enforces the puzzle rules (never place a larger disk on a smaller one)
// and IsComplete reports whether all disks reached the last peg.
//
// Scoring:
//
// Accuracy measures how close a move count is to optimal, as a percentage
// capped at 100. Score rewards efficiency and speed: a perfectly efficient
// solve is worth 1000 points minus one point per elapsed second, floored
// at zero. Both treat a zero move count specially: accuracy 100 (no
// deviation yet), score 0 (nothing earned yet).
//
// Usage:
//
//	board, err := hanoi.NewBoard(4)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := board.Apply(0, 2); err != nil {
//		// illegal move
//	}
//
//	score := hanoi.Score(4, movesTaken, elapsedSeconds)
//
// Everything in this package is pure and stateless with respect to the
// rest of the server; it performs no I/O and holds no locks.
package hanoi
