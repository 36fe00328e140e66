package core

import "testing"

func TestRectContainsBoard(t *testing.T) {
	board := NewRect(0, 0, 10, 8)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"origin", 0, 0, true},
		{"interior", 4, 3, true},
		{"last column", 9, 3, true},
		{"last row", 4, 7, true},
		{"right of board", 10, 3, false},
		{"below board", 4, 8, false},
		{"negative x", -1, 3, false},
		{"negative y", 4, -1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := board.Contains(tc.x, tc.y); got != tc.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 2, 12, 5)
	if r.Right() != 15 || r.Bottom() != 7 {
		t.Errorf("edges = (%d, %d), want (15, 7)", r.Right(), r.Bottom())
	}
	if NewRect(3, 2, 0, 0).Contains(3, 2) {
		t.Error("an empty rect contains nothing")
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, want float64
	}{
		{0.5, 0.5},
		{-0.1, 0},
		{1.3, 1},
		{0, 0},
		{1, 1},
	}
	for _, tc := range tests {
		if got := ClampF(tc.val, 0, 1); got != tc.want {
			t.Errorf("ClampF(%v, 0, 1) = %v, want %v", tc.val, got, tc.want)
		}
	}
}
