// Package grid maps linear character-buffer indices onto a fixed-width
// cell grid for the desktop front-end's text panes.
package grid

// GetGridCoords converts a linear buffer index into (column, row) on a
// grid that is cols cells wide.
func GetGridCoords(index int, cols int) (x, y int) {
	return index % cols, index / cols
}

// CellOrigin returns the pixel origin of the cell at (x, y) given the cell
// dimensions.
func CellOrigin(x, y, cellWidth, cellHeight int) (px, py int) {
	return x * cellWidth, y * cellHeight
}
