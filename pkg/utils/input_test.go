package utils

import "testing"

func TestPointerTracker_Cursor(t *testing.T) {
	var p PointerTracker
	if !p.Observe(nil, 10, 20) {
		t.Error("first cursor position should count as a change")
	}
	if x, y := p.Position(); x != 10 || y != 20 {
		t.Errorf("Position() = (%d, %d), want (10, 20)", x, y)
	}
	if p.Observe(nil, 10, 20) {
		t.Error("unchanged cursor should not report a change")
	}
}

func TestPointerTracker_TouchWinsAndSticks(t *testing.T) {
	var p PointerTracker
	p.Observe(nil, 0, 0)

	p.Observe([][2]int{{100, 50}, {5, 5}}, 0, 0)
	if x, y := p.Position(); x != 100 || y != 50 || !p.Touching() {
		t.Fatalf("Position() = (%d, %d) touching=%v, want first touch", x, y, p.Touching())
	}

	// touch released, cursor idle: keep the last touch position
	if p.Observe(nil, 0, 0) {
		t.Error("releasing a touch should not move the pointer")
	}
	if x, y := p.Position(); x != 100 || y != 50 || p.Touching() {
		t.Errorf("Position() = (%d, %d) touching=%v after release", x, y, p.Touching())
	}

	// the cursor moving again takes over
	p.Observe(nil, 3, 4)
	if x, y := p.Position(); x != 3 || y != 4 {
		t.Errorf("Position() = (%d, %d), want cursor (3, 4)", x, y)
	}
}
