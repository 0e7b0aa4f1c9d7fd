package softtab

import "testing"

func TestNearestStop(t *testing.T) {
	tests := []struct {
		column, size, want int
	}{
		{0, 4, 0},
		{1, 4, 0},
		{2, 4, 4},
		{3, 4, 4},
		{4, 4, 4},
		{5, 4, 4},
		{6, 4, 8},
		{9, 2, 10},
		{1, 3, 0},
		{2, 3, 3},
		{2, 5, 0},
		{3, 5, 5},
		{7, 5, 5},
		{7, 8, 8},
		{3, 8, 0},
		{5, 0, 5},
	}

	for _, tt := range tests {
		if got := NearestStop(tt.column, tt.size); got != tt.want {
			t.Errorf("NearestStop(%d, %d) = %d, want %d", tt.column, tt.size, got, tt.want)
		}
	}
}

func TestNearestStopProperties(t *testing.T) {
	for size := 1; size <= 9; size++ {
		for col := 0; col <= 40; col++ {
			stop := NearestStop(col, size)
			if stop%size != 0 {
				t.Fatalf("NearestStop(%d, %d) = %d is not a stop", col, size, stop)
			}
			d := stop - col
			if d < 0 {
				d = -d
			}
			if 2*d > size {
				t.Fatalf("NearestStop(%d, %d) = %d moved more than half a unit", col, size, stop)
			}
			if size%2 == 0 && col%size == size/2 && stop < col {
				t.Fatalf("NearestStop(%d, %d) = %d should round up at the midpoint", col, size, stop)
			}
		}
	}
}

func TestPreviousAndNextStop(t *testing.T) {
	tests := []struct {
		column, prev, next int
	}{
		{0, 0, 4},
		{1, 0, 4},
		{3, 0, 4},
		{4, 0, 8},
		{5, 4, 8},
		{8, 4, 12},
	}

	for _, tt := range tests {
		if got := PreviousStop(tt.column, 4); got != tt.prev {
			t.Errorf("PreviousStop(%d) = %d, want %d", tt.column, got, tt.prev)
		}
		if got := NextStop(tt.column, 4); got != tt.next {
			t.Errorf("NextStop(%d) = %d, want %d", tt.column, got, tt.next)
		}
	}
}

func TestTabStops(t *testing.T) {
	s := TabStops{IndentSize: 2}
	if s.Nearest(3) != 4 || s.Previous(3) != 2 || s.Next(3) != 4 {
		t.Errorf("unexpected stops for 3: %d %d %d", s.Nearest(3), s.Previous(3), s.Next(3))
	}
	if !s.IsStop(6) || s.IsStop(7) {
		t.Error("IsStop mismatch")
	}
	if (TabStops{}).IsStop(0) {
		t.Error("zero indent size has no stops")
	}
}
