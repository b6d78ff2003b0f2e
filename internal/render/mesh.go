package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lasercut/planetoids/internal/geom"
)

// Mesh is a triangle list over a polygon's vertices with a uniform color.
type Mesh struct {
	Vertices []mgl64.Vec2
	Indices  []uint16
	Color    color.RGBA
}

// Triangles is the number of triangles in the mesh.
func (m Mesh) Triangles() int { return len(m.Indices) / 3 }

// BuildMesh fans a convex polygon from vertex 0. Polygons with fewer than
// three vertices produce an empty index list.
func BuildMesh(poly geom.Polygon, c color.RGBA) Mesh {
	m := Mesh{
		Vertices: poly.Clone(),
		Color:    c,
	}
	n := len(poly)
	if n < 3 || n > math.MaxUint16 {
		return m
	}
	m.Indices = make([]uint16, 0, 3*(n-2))
	for i := 1; i < n-1; i++ {
		m.Indices = append(m.Indices, 0, uint16(i), uint16(i+1))
	}
	return m
}

// Faded scales a premultiplied color by alpha in [0,1].
func Faded(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * alpha)) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}
