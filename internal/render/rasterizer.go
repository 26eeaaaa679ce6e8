package render

import (
	"math"
)

// Cell is a grid position.
type Cell struct {
	Col, Row int
}

// Line samples the segment p1-p2 into grid cells on a width x height grid.
//
// The step count is the ceiling of the segment length and x advances
// uniformly from the leftmost endpoint; y follows from the slope of the
// unclamped x. A zero x run falls back to a slope of 1. Samples outside the
// grid are clamped onto its border (columns to [0, width-2], rows to
// [0, height-1]), so steep lines may repeat or skip cells. Segments longer
// than maxSteps are sampled at maxSteps evenly spaced points instead.
func Line(p1, p2 Point, width, height int) []Cell {
	var cells []Cell
	sample(p1, p2, width, height, func(c Cell) error {
		cells = append(cells, c)
		return nil
	})
	return cells
}

// DrawLine rasterizes p1-p2 onto s with marker. It stops at the first write
// error.
func DrawLine(s Surface, p1, p2 Point, marker rune) error {
	width, height := s.Size()
	return sample(p1, p2, width, height, func(c Cell) error {
		return s.Set(c.Row, c.Col, marker)
	})
}

// maxSteps bounds the sample count of one segment on a width x height grid.
func maxSteps(width, height int) int {
	return 2 * (abs(width) + abs(height) + 1)
}

func sample(p1, p2 Point, width, height int, visit func(Cell) error) error {
	dy := p1.Y - p2.Y
	dx := p1.X - p2.X

	slope := 1.0
	if dx != 0 {
		slope = dy / dx
	}
	intercept := p1.Y - slope*p1.X

	length := math.Ceil(math.Sqrt(dx*dx + dy*dy))
	if !(length > 0) || math.IsInf(length, 0) {
		return nil
	}
	steps := maxSteps(width, height)
	if length < float64(steps) {
		steps = int(length)
	}
	divisor := float64(steps)

	startX := p2.X
	if p2.X > p1.X {
		startX = p1.X
	}
	run := math.Abs(dx)

	for i := 0; i < steps; i++ {
		x := startX + float64(i)*run/divisor
		y := slope*x + intercept

		x = clamp(x, 0, float64(width-2))
		y = clamp(y, 0, float64(height-1))

		// Both values are >= 0 here unless the grid is degenerate, so
		// Floor and truncation agree.
		err := visit(Cell{
			Col: int(math.Floor(x)),
			Row: int(math.Floor(y)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
