package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Blank is the rune held by a cleared cell.
const Blank = ' '

var ErrOutOfBounds = errors.New("cell out of bounds")

// Frame is an in-memory character grid. It satisfies Surface with a no-op
// Present, so hosts embed it and supply their own Present.
type Frame struct {
	width, height int
	cells         []rune
}

func NewFrame(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f := &Frame{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
	}
	f.Clear()
	return f
}

func (f *Frame) Size() (int, int) {
	return f.width, f.height
}

func (f *Frame) Set(row, col int, ch rune) error {
	if row < 0 || row >= f.height || col < 0 || col >= f.width {
		return fmt.Errorf("set (%d,%d) on %dx%d grid: %w", row, col, f.width, f.height, ErrOutOfBounds)
	}
	f.cells[row*f.width+col] = ch
	return nil
}

// At returns the rune at (row, col), or Blank outside the grid.
func (f *Frame) At(row, col int) rune {
	if row < 0 || row >= f.height || col < 0 || col >= f.width {
		return Blank
	}
	return f.cells[row*f.width+col]
}

func (f *Frame) Present() error {
	return nil
}

func (f *Frame) Clear() error {
	for i := range f.cells {
		f.cells[i] = Blank
	}
	return nil
}

// Lit returns every non-blank cell in row-major order.
func (f *Frame) Lit() []Cell {
	var lit []Cell
	for i, ch := range f.cells {
		if ch != Blank {
			lit = append(lit, Cell{Col: i % f.width, Row: i / f.width})
		}
	}
	return lit
}

// Lines renders the grid as one string per row.
func (f *Frame) Lines() []string {
	lines := make([]string, f.height)
	for row := 0; row < f.height; row++ {
		lines[row] = string(f.cells[row*f.width : (row+1)*f.width])
	}
	return lines
}

func (f *Frame) String() string {
	return strings.Join(f.Lines(), "\n")
}

// Sum64 hashes the grid content. Hosts compare it between frames to skip
// presenting a frame identical to the previous one.
func (f *Frame) Sum64() uint64 {
	d := xxhash.New()
	for _, line := range f.Lines() {
		d.Write([]byte(line))
		d.Write([]byte{'\n'})
	}
	return d.Sum64()
}
