package hanoi

import "testing"

func TestNewBoard(t *testing.T) {
	t.Run("valid disk count", func(t *testing.T) {
		b, err := NewBoard(4)
		if err != nil {
			t.Fatalf("NewBoard(4) failed: %v", err)
		}
		if len(b.Pegs[0]) != 4 {
			t.Errorf("Expected 4 disks on first peg, got %d", len(b.Pegs[0]))
		}
		if b.Pegs[0][0] != 4 || b.Pegs[0][3] != 1 {
			t.Errorf("Expected largest disk at bottom, got %v", b.Pegs[0])
		}
	})

	t.Run("disk count out of range", func(t *testing.T) {
		for _, n := range []int{0, 1, 2, 9, -1} {
			if _, err := NewBoard(n); err == nil {
				t.Errorf("NewBoard(%d) should have failed", n)
			}
		}
	})
}

func TestBoard_Apply(t *testing.T) {
	t.Run("legal move", func(t *testing.T) {
		b, _ := NewBoard(3)
		if err := b.Apply(0, 2); err != nil {
			t.Fatalf("Apply(0, 2) failed: %v", err)
		}
		if len(b.Pegs[0]) != 2 || len(b.Pegs[2]) != 1 {
			t.Errorf("Unexpected peg sizes after move: %v", b.Pegs)
		}
		if b.Pegs[2][0] != 1 {
			t.Errorf("Expected smallest disk moved, got %d", b.Pegs[2][0])
		}
	})

	t.Run("larger disk on smaller", func(t *testing.T) {
		b, _ := NewBoard(3)
		b.Apply(0, 2)
		if err := b.Apply(0, 2); err == nil {
			t.Error("Expected error placing disk 2 on disk 1")
		}
	})

	t.Run("empty source peg", func(t *testing.T) {
		b, _ := NewBoard(3)
		if err := b.Apply(1, 2); err == nil {
			t.Error("Expected error moving from empty peg")
		}
	})

	t.Run("same peg", func(t *testing.T) {
		b, _ := NewBoard(3)
		if err := b.Apply(0, 0); err == nil {
			t.Error("Expected error moving disk onto its own peg")
		}
	})

	t.Run("peg out of range", func(t *testing.T) {
		b, _ := NewBoard(3)
		if err := b.Apply(0, 3); err == nil {
			t.Error("Expected error for peg index 3")
		}
	})
}

func TestBoard_IsComplete(t *testing.T) {
	b, _ := NewBoard(3)
	if b.IsComplete() {
		t.Error("Fresh board should not be complete")
	}

	// Optimal 7-move solution for 3 disks.
	moves := [][2]int{{0, 2}, {0, 1}, {2, 1}, {0, 2}, {1, 0}, {1, 2}, {0, 2}}
	for i, mv := range moves {
		if err := b.Apply(mv[0], mv[1]); err != nil {
			t.Fatalf("Move %d (%v) failed: %v", i+1, mv, err)
		}
	}
	if !b.IsComplete() {
		t.Errorf("Board should be complete after optimal solve, pegs: %v", b.Pegs)
	}
}

func TestMinimumMoves(t *testing.T) {
	expected := map[int]int{3: 7, 4: 15, 5: 31, 6: 63, 7: 127, 8: 255}
	for n, want := range expected {
		if got := MinimumMoves(n); got != want {
			t.Errorf("MinimumMoves(%d) = %d, want %d", n, got, want)
		}
	}
}
