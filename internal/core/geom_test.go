package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectContainsRect(t *testing.T) {
	bounds := NewRect(0, 0, 10, 10)

	tests := []struct {
		name     string
		inner    Rect
		expected bool
	}{
		{"same rect", NewRect(0, 0, 10, 10), true},
		{"inside", NewRect(2, 2, 3, 3), true},
		{"touching right edge", NewRect(5, 0, 5, 5), true},
		{"crossing right edge", NewRect(6, 0, 5, 5), false},
		{"crossing left edge", NewRect(-1, 0, 3, 3), false},
		{"crossing bottom edge", NewRect(0, 8, 3, 3), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := bounds.ContainsRect(tc.inner); got != tc.expected {
				t.Errorf("ContainsRect(%+v) = %v, expected %v", tc.inner, got, tc.expected)
			}
		})
	}
}

func TestSquare(t *testing.T) {
	sq := Square(5, 7, 2)
	if sq.X != 3 || sq.Y != 5 || sq.W != 5 || sq.H != 5 {
		t.Errorf("Square(5, 7, 2) = %+v, expected {3 5 5 5}", sq)
	}
	if sq.Right() != 8 || sq.Bottom() != 10 {
		t.Errorf("Square edges = (%d, %d), expected (8, 10)", sq.Right(), sq.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.5, 0.0, 1.0, 0.5},
		{-0.5, 0.0, 1.0, 0.0},
		{1.5, 0.0, 1.0, 1.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		x, n, expected int
	}{
		{5, 10, 5},
		{15, 10, 5},
		{-1, 10, 9},
		{-10, 10, 0},
		{-11, 10, 9},
		{3, 0, 0},
	}

	for _, tc := range tests {
		if got := Mod(tc.x, tc.n); got != tc.expected {
			t.Errorf("Mod(%d, %d) = %d, expected %d", tc.x, tc.n, got, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
