package hero

// Pointer is the shared pointer position in canvas coordinates.
//
// Exactly one input handler writes it and every particle reads it once per
// frame. Both run on the frame goroutine, so no locking is needed: the
// last write before a frame wins.
type Pointer struct {
	x, y float64
}

// NewPointer returns a pointer at the canvas origin.
func NewPointer() *Pointer {
	return &Pointer{}
}

// Set records a new pointer position.
func (p *Pointer) Set(x, y float64) {
	p.x, p.y = x, y
}

// Position returns the last recorded position.
func (p *Pointer) Position() (x, y float64) {
	return p.x, p.y
}
