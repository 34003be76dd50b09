package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
		{
			name:     "player and enemy sharing a corner",
			a:        NewRect(100, 400, 32, 32),
			b:        NewRect(100, 400, 24, 24),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"inside", Pt(15, 15), true},
		{"top-left corner", Pt(10, 10), true},
		{"bottom-right edge (exclusive)", Pt(30, 25), false},
		{"right edge (exclusive)", Pt(30, 15), false},
		{"just inside right edge", Pt(29.99, 15), true},
		{"outside left", Pt(5, 15), false},
		{"outside top", Pt(15, 5), false},
		{"outside bottom", Pt(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.p)
			if result != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, result, tc.expected)
			}
		})
	}
}

func TestCircleContains(t *testing.T) {
	c := Circle{X: 150, Y: 350, R: 15}

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"center", Pt(150, 350), true},
		{"on boundary", Pt(165, 350), true},
		{"just outside", Pt(165.01, 350), false},
		{"diagonal inside", Pt(160, 360), true},
		{"diagonal outside", Pt(161, 361), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestCircleBounds(t *testing.T) {
	b := Circle{X: 200, Y: 100, R: 15}.Bounds()
	if b != NewRect(185, 85, 30, 30) {
		t.Errorf("Bounds() = %+v, expected {185 85 30 30}", b)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", r.Bottom())
	}

	c := r.Center()
	if c.X != 15 || c.Y != 17.5 {
		t.Errorf("Center() = (%v, %v), expected (15, 17.5)", c.X, c.Y)
	}

	moved := r.Translate(1, -2)
	if moved.X != 6 || moved.Y != 8 || moved.W != 20 || moved.H != 15 {
		t.Errorf("Translate() = %+v", moved)
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
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
