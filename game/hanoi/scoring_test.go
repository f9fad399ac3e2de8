package hanoi

import "testing"

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		diskCount int
		moves     int
		want      float64
	}{
		{"zero moves", 4, 0, 100},
		{"optimal", 4, 15, 100},
		{"half efficiency", 4, 30, 50},
		{"capped at 100", 4, 10, 100},
		{"three disks rounding", 3, 9, 77.78},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accuracy(tt.diskCount, tt.moves); got != tt.want {
				t.Errorf("Accuracy(%d, %d) = %v, want %v", tt.diskCount, tt.moves, got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		diskCount int
		moves     int
		elapsed   float64
		want      float64
	}{
		{"zero moves", 4, 0, 10, 0},
		{"optimal solve", 4, 15, 10, 990},
		{"half efficiency", 4, 30, 50, 450},
		{"floored at zero", 3, 70, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.diskCount, tt.moves, tt.elapsed); got != tt.want {
				t.Errorf("Score(%d, %d, %v) = %v, want %v", tt.diskCount, tt.moves, tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestScoreNonNegative(t *testing.T) {
	for n := MinDiskCount; n <= MaxDiskCount; n++ {
		for _, moves := range []int{0, 1, 100, 10000} {
			if s := Score(n, moves, 9999); s < 0 {
				t.Errorf("Score(%d, %d, 9999) = %v, want >= 0", n, moves, s)
			}
			if a := Accuracy(n, moves); a < 0 || a > 100 {
				t.Errorf("Accuracy(%d, %d) = %v, want within [0,100]", n, moves, a)
			}
		}
	}
}
