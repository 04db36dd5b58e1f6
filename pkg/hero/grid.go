package hero

import "math"

// DefaultCellSize is the spatial grid cell edge in canvas units.
const DefaultCellSize = 60.0

// Grid is a uniform bucket grid over the canvas, rebuilt every frame.
//
// Buckets hold arena indices of the active particles whose position falls
// inside the cell. Bucket storage is reused between rebuilds.
type Grid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int
}

// NewGrid creates a grid covering a width×height canvas.
// A cellSize ≤ 0 selects DefaultCellSize.
func NewGrid(width, height int, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	cols := int(math.Ceil(float64(width) / cellSize))
	rows := int(math.Ceil(float64(height) / cellSize))
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}
}

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (cols, rows int) {
	return g.cols, g.rows
}

// CellSize returns the cell edge length.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// CellOf returns the cell coordinates containing (x, y). The result may lie
// outside the grid for positions off the canvas.
func (g *Grid) CellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / g.cellSize)), int(math.Floor(y / g.cellSize))
}

// Cell returns the indices bucketed in (col, row), or nil when the cell is
// outside the grid. The slice is only valid until the next Rebuild.
func (g *Grid) Cell(col, row int) []int {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return nil
	}
	return g.cells[row*g.cols+col]
}

// Rebuild buckets every active particle of the arena by position.
// Particles outside the canvas are skipped.
func (g *Grid) Rebuild(arena []Particle) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	for i, p := range arena {
		if !p.Active() {
			continue
		}
		b := p.Body()
		col, row := g.CellOf(b.X, b.Y)
		if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
			continue
		}
		k := row*g.cols + col
		g.cells[k] = append(g.cells[k], i)
	}
}
