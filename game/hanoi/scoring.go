package hanoi

import "math"

// Accuracy returns how close a player's move count is to optimal, as a
// percentage capped at 100. Zero moves taken reads as a perfect 100 since
// the player has not deviated from the optimal line yet.
func Accuracy(diskCount, movesTaken int) float64 {
	if movesTaken == 0 {
		return 100
	}
	minMoves := MinimumMoves(diskCount)
	value := float64(minMoves) / float64(movesTaken) * 100
	return math.Min(100, round2(value))
}

// Score combines move efficiency with elapsed time. A perfectly efficient
// solve is worth 1000 points minus one point per elapsed second, floored
// at zero. Zero moves taken scores zero.
func Score(diskCount, movesTaken int, elapsedSeconds float64) float64 {
	if movesTaken == 0 {
		return 0
	}
	minMoves := MinimumMoves(diskCount)
	value := float64(minMoves)/float64(movesTaken)*1000 - elapsedSeconds
	return round2(math.Max(0, value))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
