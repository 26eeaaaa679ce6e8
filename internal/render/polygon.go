package render

import (
	"fmt"
	"math"
)

// PolarVertex is a vertex relative to a polygon's centre.
type PolarVertex struct {
	Radius float64
	Angle  float64
}

// PolarPolygon is a closed polygon whose vertices spin around Center.
// Velocity is added to every angle once per frame and is then multiplied by
// Acceleration, so angular speed compounds geometrically.
type PolarPolygon struct {
	Center       Point
	Velocity     float64
	Acceleration float64
	Vertices     []PolarVertex
}

// Cartesian converts every vertex to screen coordinates. A negative radius
// mirrors the vertex through the centre.
func (p *PolarPolygon) Cartesian() []Point {
	points := make([]Point, len(p.Vertices))
	for i, v := range p.Vertices {
		points[i] = Point{
			X: p.Center.X + v.Radius*math.Cos(v.Angle),
			Y: p.Center.Y + v.Radius*math.Sin(v.Angle),
		}
	}
	return points
}

// Edges returns the closed loop i -> i+1 with the last vertex joined back to
// the first.
func (p *PolarPolygon) Edges() []Edge {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	edges := make([]Edge, n)
	for i := range edges {
		edges[i] = Edge{i, (i + 1) % n}
	}
	return edges
}

// Advance steps the rotation by one frame.
func (p *PolarPolygon) Advance() {
	for i := range p.Vertices {
		p.Vertices[i].Angle += p.Velocity
	}
	p.Velocity *= p.Acceleration
}

// ScaleRadius multiplies every radius by factor.
func (p *PolarPolygon) ScaleRadius(factor float64) {
	for i := range p.Vertices {
		p.Vertices[i].Radius *= factor
	}
}

// PolygonFactors are the multipliers applied by the polygon's actions.
type PolygonFactors struct {
	Grow, Shrink      float64
	SpeedUp, SlowDown float64
}

// PolygonScene animates a PolarPolygon.
type PolygonScene struct {
	Polygon PolarPolygon
	Factors PolygonFactors
}

func NewPolygonScene(polygon PolarPolygon, factors PolygonFactors) *PolygonScene {
	return &PolygonScene{Polygon: polygon, Factors: factors}
}

func (p *PolygonScene) Apply(a Action) bool {
	switch a {
	case ActionGrow:
		p.Polygon.ScaleRadius(p.Factors.Grow)
	case ActionShrink:
		p.Polygon.ScaleRadius(p.Factors.Shrink)
	case ActionSpeedUp:
		p.Polygon.Velocity *= p.Factors.SpeedUp
	case ActionSlowDown:
		p.Polygon.Velocity *= p.Factors.SlowDown
	default:
		return false
	}
	return true
}

func (p *PolygonScene) Render(s Surface, marker rune) error {
	points := p.Polygon.Cartesian()
	for _, e := range p.Polygon.Edges() {
		if err := DrawLine(s, points[e[0]], points[e[1]], marker); err != nil {
			return err
		}
	}
	return nil
}

func (p *PolygonScene) Advance() {
	p.Polygon.Advance()
}

func (p *PolygonScene) Status() string {
	return fmt.Sprintf("polygon vertices=%d velocity=%.4f", len(p.Polygon.Vertices), p.Polygon.Velocity)
}
