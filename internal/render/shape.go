package render

import (
	"fmt"
	"math"
)

// Edge joins two vertices by index.
type Edge [2]int

// Wireframe is a vertex list with an explicit edge table.
type Wireframe struct {
	Vertices []Vec3
	Edges    []Edge
}

// Validate checks that every edge references an existing vertex.
func (w Wireframe) Validate() error {
	for i, e := range w.Edges {
		for _, idx := range e {
			if idx < 0 || idx >= len(w.Vertices) {
				return fmt.Errorf("edge %d (%d,%d) references vertex %d of %d", i, e[0], e[1], idx, len(w.Vertices))
			}
		}
	}
	return nil
}

// Pyramid is a square-based pyramid in normalized coordinates: four base
// vertices at y=-1 and the apex at (0,1,0).
func Pyramid() Wireframe {
	return Wireframe{
		Vertices: []Vec3{
			{-1, -1, -1},
			{-1, -1, 1},
			{1, -1, 1},
			{1, -1, -1},
			{0, 1, 0},
		},
		Edges: []Edge{
			// Base
			{0, 1},
			{1, 2},
			{2, 3},
			{3, 0},
			// Sides
			{0, 4},
			{1, 4},
			{2, 4},
			{3, 4},
		},
	}
}

// RenderState holds the rotation and scale of a Wireframe scene.
type RenderState struct {
	AngleX, AngleY, AngleZ float64
	// AngleStep is the per-keypress rotation delta for each axis.
	AngleStep Vec3
	Scale     float64
	ScaleStep float64
	// Origin is the screen position of the model origin.
	Origin Point
	// Aspect is height/width of the grid and scales y.
	Aspect float64
}

// NewRenderState centres the origin on a width x height grid.
func NewRenderState(width, height int, scale, scaleStep, angleStep float64) RenderState {
	aspect := 0.0
	if width > 0 {
		aspect = float64(height) / float64(width)
	}
	return RenderState{
		AngleStep: Vec3{angleStep, angleStep, angleStep},
		Scale:     scale,
		ScaleStep: scaleStep,
		Origin: Point{
			X: math.Trunc(float64(width) / 2),
			Y: math.Trunc(float64(height) / 2),
		},
		Aspect: aspect,
	}
}

// ToScreen maps a projected model point to grid coordinates. Model y grows
// upward and screen y downward, so y is negated. Both coordinates are
// truncated toward zero.
func (s RenderState) ToScreen(p Point) Point {
	return Point{
		X: s.Origin.X + math.Trunc(p.X*s.Scale),
		Y: math.Trunc(s.Origin.Y + p.Y*s.Scale*-1*s.Aspect),
	}
}

// WireframeScene animates a Wireframe under a RenderState.
type WireframeScene struct {
	Shape Wireframe
	State RenderState
}

func NewWireframeScene(shape Wireframe, state RenderState) (*WireframeScene, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &WireframeScene{Shape: shape, State: state}, nil
}

func (w *WireframeScene) Apply(a Action) bool {
	s := &w.State
	switch a {
	case ActionRotateXPos:
		s.AngleX += s.AngleStep.X
	case ActionRotateXNeg:
		s.AngleX -= s.AngleStep.X
	case ActionRotateYPos:
		s.AngleY += s.AngleStep.Y
	case ActionRotateYNeg:
		s.AngleY -= s.AngleStep.Y
	case ActionRotateZPos:
		s.AngleZ += s.AngleStep.Z
	case ActionRotateZNeg:
		s.AngleZ -= s.AngleStep.Z
	case ActionScaleUp:
		s.Scale += s.ScaleStep
	case ActionScaleDown:
		s.Scale -= s.ScaleStep
	default:
		return false
	}
	return true
}

// Points transforms and projects every vertex into screen space.
func (w *WireframeScene) Points() []Point {
	points := make([]Point, len(w.Shape.Vertices))
	for i, v := range w.Shape.Vertices {
		rotated := Transform(v, w.State.AngleX, w.State.AngleY, w.State.AngleZ)
		points[i] = w.State.ToScreen(Project(rotated))
	}
	return points
}

func (w *WireframeScene) Render(s Surface, marker rune) error {
	points := w.Points()
	for _, e := range w.Shape.Edges {
		if err := DrawLine(s, points[e[0]], points[e[1]], marker); err != nil {
			return err
		}
	}
	return nil
}

// Advance is a no-op; a wireframe only moves on input.
func (w *WireframeScene) Advance() {}

func (w *WireframeScene) Status() string {
	s := w.State
	return fmt.Sprintf("pyramid x=%.2f y=%.2f z=%.2f scale=%.0f", s.AngleX, s.AngleY, s.AngleZ, s.Scale)
}
