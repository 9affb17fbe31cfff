package raster

import "github.com/lucasb-eyer/go-colorful"

// UpperHalf is the glyph whose foreground paints the top dot of a cell and background the bottom dot
const UpperHalf = '▀'

// Cells returns the character grid size needed to show the canvas with half blocks
func (c *Canvas) Cells() (cols, rows int) {
	return c.width, (c.height + 1) / 2
}

// HalfBlocks visits every character cell with its top and bottom dot colors
// An odd last row pairs its dot with black
func (c *Canvas) HalfBlocks(visit func(col, row int, top, bottom colorful.Color)) {
	cols, rows := c.Cells()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			visit(col, row, c.At(col, row*2), c.At(col, row*2+1))
		}
	}
}
