package render

import (
	"bufio"
	"io"

	"github.com/anas-shakeel/bmpview/internal/utils"
)

// TerminalCanvas prints frames as rows of colored blocks. Only every step-th
// pixel in each direction is kept, a 256 pixel row is too wide for most
// terminals.
type TerminalCanvas struct {
	w     *bufio.Writer
	step  int
	cells [][][3]uint8
	color [3]uint8
}

func NewTerminalCanvas(w io.Writer, width, height, step int) *TerminalCanvas {
	if step < 1 {
		step = 1
	}
	cells := make([][][3]uint8, (height+step-1)/step)
	for i := range cells {
		cells[i] = make([][3]uint8, (width+step-1)/step)
	}
	return &TerminalCanvas{w: bufio.NewWriter(w), step: step, cells: cells}
}

func (c *TerminalCanvas) SetDrawColor(r, g, b uint8) {
	c.color = [3]uint8{r, g, b}
}

func (c *TerminalCanvas) DrawPoint(x, y int) error {
	if x%c.step != 0 || y%c.step != 0 {
		return nil
	}
	row, col := y/c.step, x/c.step
	if row >= 0 && row < len(c.cells) && col >= 0 && col < len(c.cells[row]) {
		c.cells[row][col] = c.color
	}
	return nil
}

func (c *TerminalCanvas) Present() error {
	for _, row := range c.cells {
		for _, cell := range row {
			if _, err := c.w.WriteString(utils.ColoredBlock("  ", cell[0], cell[1], cell[2])); err != nil {
				return err
			}
		}
		if err := c.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return c.w.Flush()
}
