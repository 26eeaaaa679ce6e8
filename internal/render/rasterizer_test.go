package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineDegenerate(t *testing.T) {
	assert.Empty(t, Line(Point{0, 0}, Point{0, 0}, 80, 24))
	assert.Empty(t, Line(Point{7.5, 3.25}, Point{7.5, 3.25}, 80, 24))

	f := NewFrame(80, 24)
	require.NoError(t, DrawLine(f, Point{0, 0}, Point{0, 0}, '.'))
	assert.Empty(t, f.Lit())
}

func TestLineHorizontal(t *testing.T) {
	cells := Line(Point{0, 0}, Point{5, 0}, 80, 24)
	require.NotEmpty(t, cells)
	for _, c := range cells {
		assert.Equal(t, 0, c.Row)
	}
	assert.Equal(t, 0, cells[0].Col)
	last := cells[len(cells)-1].Col
	assert.GreaterOrEqual(t, last, 4)
	assert.LessOrEqual(t, last, 5)
}

func TestLineLeftToRight(t *testing.T) {
	forward := Line(Point{2, 3}, Point{12, 8}, 80, 24)
	backward := Line(Point{12, 8}, Point{2, 3}, 80, 24)
	assert.Equal(t, forward, backward)
	assert.Equal(t, 2, forward[0].Col)
	for i := 1; i < len(forward); i++ {
		assert.GreaterOrEqual(t, forward[i].Col, forward[i-1].Col)
	}
}

func TestLineDiagonal(t *testing.T) {
	cells := Line(Point{0, 0}, Point{4, 4}, 80, 24)
	// ceil(sqrt(32)) samples.
	require.Len(t, cells, 6)
	for _, c := range cells {
		assert.Equal(t, c.Col, c.Row)
	}
}

func TestLineVerticalFallsBackToSlopeOne(t *testing.T) {
	// With no x run the slope defaults to 1, so every sample lands on
	// y = x + (y1 - x1) at the single column.
	cells := Line(Point{3, 0}, Point{3, 4}, 80, 24)
	require.Len(t, cells, 4)
	for _, c := range cells {
		assert.Equal(t, Cell{Col: 3, Row: 0}, c)
	}
}

func TestLineClampsToGrid(t *testing.T) {
	const width, height = 20, 10

	cases := []struct {
		name   string
		p1, p2 Point
	}{
		{"horizontal through", Point{-10, 5}, Point{100, 5}},
		{"diagonal through", Point{-10, -10}, Point{30, 30}},
		{"above the grid", Point{-5, -50}, Point{40, -60}},
		{"below and right", Point{25, 12}, Point{60, 40}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cells := Line(tc.p1, tc.p2, width, height)
			require.NotEmpty(t, cells)
			for _, c := range cells {
				assert.GreaterOrEqual(t, c.Col, 0)
				assert.LessOrEqual(t, c.Col, width-2)
				assert.GreaterOrEqual(t, c.Row, 0)
				assert.LessOrEqual(t, c.Row, height-1)
			}
		})
	}

	cells := Line(Point{-10, 5}, Point{100, 5}, width, height)
	assert.Equal(t, Cell{Col: 0, Row: 5}, cells[0])
	assert.Equal(t, Cell{Col: width - 2, Row: 5}, cells[len(cells)-1])
}

func TestDrawLineWritesMarker(t *testing.T) {
	f := NewFrame(10, 3)
	require.NoError(t, DrawLine(f, Point{1, 1}, Point{6, 1}, '#'))
	assert.Equal(t, []string{
		strings.Repeat(" ", 10),
		" #####" + strings.Repeat(" ", 4),
		strings.Repeat(" ", 10),
	}, f.Lines())
}

func TestDrawLineSurfaceTooSmall(t *testing.T) {
	// A one-column grid leaves no valid column after clamping to width-2.
	f := NewFrame(1, 5)
	err := DrawLine(f, Point{0, 0}, Point{0, 3}, '.')
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestLineHugeSegmentStaysInGrid(t *testing.T) {
	const width, height = 80, 24

	cells := Line(Point{0, 0}, Point{1e14, 0}, width, height)
	require.NotEmpty(t, cells)
	assert.LessOrEqual(t, len(cells), maxSteps(width, height))
	assert.Equal(t, Cell{Col: 0, Row: 0}, cells[0])
	assert.Equal(t, Cell{Col: width - 2, Row: 0}, cells[len(cells)-1])

	f := NewFrame(width, height)
	require.NoError(t, DrawLine(f, Point{0, 0}, Point{1e14, 0}, '.'))
	assert.Equal(t, "."+strings.Repeat(" ", width-3)+". ", f.Lines()[0])
}

func TestLineShortSegmentIsNotCapped(t *testing.T) {
	// On-grid segments keep one sample per unit of length.
	cells := Line(Point{0, 0}, Point{70, 20}, 80, 24)
	assert.Len(t, cells, 73)
}

func TestLineOffGridLeadInFollowsBorder(t *testing.T) {
	// y is taken from the unclamped x, so the part left of the grid runs
	// down column 0 instead of collapsing onto a single cell.
	cells := Line(Point{-10, 0}, Point{10, 20}, 80, 24)
	require.Len(t, cells, 29)
	assert.Equal(t, []Cell{{0, 0}, {0, 0}, {0, 1}, {0, 2}}, cells[:4])
	assert.Equal(t, Cell{Col: 0, Row: 9}, cells[14])
	assert.Equal(t, Cell{Col: 9, Row: 19}, cells[28])
}
