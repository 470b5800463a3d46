package globe

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Edge is an unordered point pair stored with I < J.
type Edge struct{ I, J int }

// BuildAdjacency returns every pair of points closer than threshold, in
// lexicographic (I, J) order. Rotation preserves distances, so running this on
// the un-rotated cloud once is enough for the lifetime of the globe.
func BuildAdjacency(cloud PointCloud, threshold float64) []Edge {
	var edges []Edge
	for i := 0; i < len(cloud); i++ {
		for j := i + 1; j < len(cloud); j++ {
			if cloud[i].Distance(cloud[j]) < threshold {
				edges = append(edges, Edge{I: i, J: j})
			}
		}
	}
	return edges
}

// Mesh draws the wireframe edges of the globe.
type Mesh struct {
	edges []Edge
	color colorful.Color
	alpha float64
	width float64
}

// NewMesh wraps a precomputed edge list. alpha is the base coefficient that is
// scaled by endpoint opacity.
func NewMesh(edges []Edge, color colorful.Color, alpha, width float64) *Mesh {
	return &Mesh{edges: edges, color: color, alpha: alpha, width: width}
}

// Edges returns the cached adjacency.
func (m *Mesh) Edges() []Edge { return m.edges }

// EdgeAlpha returns the alpha of the segment between a and b, or 0 when the
// segment must not be drawn. The more opaque endpoint decides.
func (m *Mesh) EdgeAlpha(a, b Projected) float64 {
	if a.Behind || b.Behind {
		return 0
	}
	return m.alpha * math.Max(a.Opacity, b.Opacity)
}

// Draw strokes each edge once between the projected endpoints, offset by the
// globe centre (cx, cy). It returns the number of segments drawn.
func (m *Mesh) Draw(s Surface, proj []Projected, cx, cy float64) int {
	drawn := 0
	for _, e := range m.edges {
		if e.I >= len(proj) || e.J >= len(proj) {
			continue
		}
		a, b := proj[e.I], proj[e.J]
		alpha := m.EdgeAlpha(a, b)
		if alpha <= 0 {
			continue
		}
		s.SetGlobalAlpha(alpha)
		s.StrokeLine(cx+a.X, cy+a.Y, cx+b.X, cy+b.Y, m.width, m.color)
		drawn++
	}
	return drawn
}
