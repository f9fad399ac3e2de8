package hanoi

import "fmt"

// Disk count bounds accepted for a match.
const (
	MinDiskCount = 3
	MaxDiskCount = 8
)

// ErrIllegalMove is returned when a move would place a larger disk on a
// smaller one or pull from an empty peg.
type ErrIllegalMove struct {
	From, To int
	Reason   string
}

func (e *ErrIllegalMove) Error() string {
	return fmt.Sprintf("illegal move from peg %d to peg %d: %s", e.From, e.To, e.Reason)
}

// Board holds the three pegs. Each peg is ordered bottom-to-top, so the
// last element is the topmost (smallest reachable) disk. Disk 1 is the
// smallest disk.
type Board struct {
	Pegs      [3][]int `json:"pegs"`
	DiskCount int      `json:"diskCount"`
}

// NewBoard returns a board with all disks stacked on the first peg,
// largest at the bottom.
func NewBoard(diskCount int) (*Board, error) {
	if diskCount < MinDiskCount || diskCount > MaxDiskCount {
		return nil, fmt.Errorf("disk count %d out of range [%d,%d]", diskCount, MinDiskCount, MaxDiskCount)
	}

	b := &Board{DiskCount: diskCount}
	b.Pegs[0] = make([]int, 0, diskCount)
	for d := diskCount; d >= 1; d-- {
		b.Pegs[0] = append(b.Pegs[0], d)
	}
	return b, nil
}

// Apply moves the top disk from one peg to another, enforcing the puzzle
// rules. Pegs are indexed 0..2.
func (b *Board) Apply(from, to int) error {
	if from < 0 || from > 2 || to < 0 || to > 2 {
		return &ErrIllegalMove{From: from, To: to, Reason: "peg index out of range"}
	}
	if from == to {
		return &ErrIllegalMove{From: from, To: to, Reason: "source and destination are the same peg"}
	}
	if len(b.Pegs[from]) == 0 {
		return &ErrIllegalMove{From: from, To: to, Reason: "source peg is empty"}
	}

	disk := b.Pegs[from][len(b.Pegs[from])-1]
	if n := len(b.Pegs[to]); n > 0 && b.Pegs[to][n-1] < disk {
		return &ErrIllegalMove{From: from, To: to, Reason: "cannot place a larger disk on a smaller one"}
	}

	b.Pegs[from] = b.Pegs[from][:len(b.Pegs[from])-1]
	b.Pegs[to] = append(b.Pegs[to], disk)
	return nil
}

// IsComplete reports whether all disks have been moved to the last peg.
func (b *Board) IsComplete() bool {
	return len(b.Pegs[2]) == b.DiskCount
}

// MinimumMoves returns the optimal number of moves for the given disk
// count: 2^n - 1.
func MinimumMoves(diskCount int) int {
	return (1 << diskCount) - 1
}
