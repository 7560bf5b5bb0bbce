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
		{"last cell", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside top", 15, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		n    int
		want Rect
	}{
		{"border", NewRect(0, 0, 10, 6), 1, NewRect(1, 1, 8, 4)},
		{"zero", NewRect(3, 4, 5, 6), 0, NewRect(3, 4, 5, 6)},
		{"collapses", NewRect(0, 0, 3, 3), 2, NewRect(2, 2, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Inset(tc.n); got != tc.want {
				t.Errorf("Inset(%d) = %+v, expected %+v", tc.n, got, tc.want)
			}
		})
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Right/Bottom = %d/%d, expected 25/25", r.Right(), r.Bottom())
	}
	if x, y := r.Center(); x != 15 || y != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", x, y)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v, expected 1", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %v, expected 0", got)
	}
}

func TestRampColor(t *testing.T) {
	if RampColor(0) != ColorDefault {
		t.Error("RampColor(0) should be the default color")
	}
	if RampColor(1) != RampColor(bandWidth) {
		t.Error("counts inside one band should share a color")
	}
	if RampColor(1) == RampColor(bandWidth+1) {
		t.Error("adjacent bands should differ")
	}
	period := bandWidth * len(blockRamp)
	if RampColor(3) != RampColor(3+period) {
		t.Error("the ramp should wrap around")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if len(f.Actions) != 0 || f.Has(ActionLaunch) {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionLaunch)
	f.Set(ActionLeft)
	if !f.Has(ActionLaunch) || !f.Has(ActionLeft) || f.Has(ActionPause) {
		t.Errorf("Has mismatch: %v", f.Actions)
	}

	f.Clear()
	if len(f.Actions) != 0 {
		t.Error("Clear should remove every action")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestStepResultHas(t *testing.T) {
	r := StepResult{Events: []Event{EventShotEnded, EventRowAdded}}
	if !r.Has(EventRowAdded) || r.Has(EventGameOver) {
		t.Errorf("Has mismatch for %v", r.Events)
	}
}
