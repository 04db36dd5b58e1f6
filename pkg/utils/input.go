// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerTracker follows the hero pointer across mouse and touch input.
//
// A touch takes precedence over the cursor. After the touch ends the last
// touch position is kept until the cursor itself moves; on touch-only
// devices the cursor never moves, so the particles keep reacting to the
// finger's last position.
type PointerTracker struct {
	x, y       int
	cursorX    int
	cursorY    int
	seenCursor bool
	touching   bool
}

// Position returns the tracked pointer position.
func (p *PointerTracker) Position() (x, y int) {
	return p.x, p.y
}

// Touching reports whether a touch was active in the last Observe.
func (p *PointerTracker) Touching() bool {
	return p.touching
}

// Observe feeds one frame of raw input.
//
// Parameters:
//   - touches: positions of the active touches, in ID order (may be empty)
//   - cursorX, cursorY: mouse cursor position
//
// Returns whether the tracked position changed.
func (p *PointerTracker) Observe(touches [][2]int, cursorX, cursorY int) bool {
	oldX, oldY := p.x, p.y
	cursorMoved := !p.seenCursor || cursorX != p.cursorX || cursorY != p.cursorY
	p.cursorX, p.cursorY, p.seenCursor = cursorX, cursorY, true

	switch {
	case len(touches) > 0:
		p.x, p.y = touches[0][0], touches[0][1]
		p.touching = true
	case cursorMoved:
		p.x, p.y = cursorX, cursorY
		p.touching = false
	default:
		p.touching = false
	}
	return p.x != oldX || p.y != oldY
}

// Update reads the current ebiten input state.
func (p *PointerTracker) Update() bool {
	var touches [][2]int
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, [2]int{x, y})
	}
	cx, cy := ebiten.CursorPosition()
	return p.Observe(touches, cx, cy)
}
