// Package geom holds the stateless 2D geometry used by the slicing core:
// polygon area, line intersection, frame transforms and the polygon split.
//
// Conventions: x increases to the right, y increases up. A positive signed
// area means counter-clockwise winding.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Polygon is an ordered vertex ring. The closing edge from the last vertex
// back to the first is implicit.
type Polygon []mgl64.Vec2

// Clone returns a copy that shares no storage with p.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Edge returns the endpoints of edge i (vertex i to vertex i+1, cyclic).
func (p Polygon) Edge(i int) (mgl64.Vec2, mgl64.Vec2) {
	return p[i], p[(i+1)%len(p)]
}

func (p Polygon) cpVerts() []cp.Vector {
	verts := make([]cp.Vector, len(p))
	for i, v := range p {
		verts[i] = cp.Vector{X: v.X(), Y: v.Y()}
	}
	return verts
}

// SignedArea is the shoelace area of p. Counter-clockwise rings are positive.
func SignedArea(p Polygon) float64 {
	if len(p) < 3 {
		return 0
	}
	verts := p.cpVerts()
	return cp.AreaForPoly(len(verts), verts, 0)
}

// Area is the absolute shoelace area of p.
func Area(p Polygon) float64 {
	return math.Abs(SignedArea(p))
}

// Centroid returns the area centroid of p, falling back to the vertex mean
// for degenerate rings.
func Centroid(p Polygon) mgl64.Vec2 {
	if len(p) == 0 {
		return mgl64.Vec2{}
	}
	if math.Abs(SignedArea(p)) < 1e-12 {
		var sum mgl64.Vec2
		for _, v := range p {
			sum = sum.Add(v)
		}
		return sum.Mul(1 / float64(len(p)))
	}
	verts := p.cpVerts()
	c := cp.CentroidForPoly(len(verts), verts)
	return mgl64.Vec2{c.X, c.Y}
}

// Radius is the largest vertex distance from the local origin.
func Radius(p Polygon) float64 {
	var r float64
	for _, v := range p {
		if l := v.Len(); l > r {
			r = l
		}
	}
	return r
}

// IsConvex reports whether every turn of p has the same sign. Collinear
// runs are tolerated.
func IsConvex(p Polygon) bool {
	if len(p) < 3 {
		return false
	}
	sign := 0
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		c := p[(i+2)%len(p)]
		z := Cross(b.Sub(a), c.Sub(b))
		if math.Abs(z) < 1e-12 {
			continue
		}
		s := 1
		if z < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return sign != 0
}

// Cross is the z component of the 3D cross product of a and b.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// Perp rotates v by +90 degrees.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// Rotate rotates v around the origin by angle radians.
func Rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	s, c := math.Sincos(angle)
	return mgl64.Vec2{v.X()*c - v.Y()*s, v.X()*s + v.Y()*c}
}

// ToLocal maps a world point into the frame at (origin, angle).
func ToLocal(world, origin mgl64.Vec2, angle float64) mgl64.Vec2 {
	return Rotate(world.Sub(origin), -angle)
}

// ToWorld maps a local point out of the frame at (origin, angle).
func ToWorld(local, origin mgl64.Vec2, angle float64) mgl64.Vec2 {
	return Rotate(local, angle).Add(origin)
}

// Transform returns p mapped out of the frame at (origin, angle).
func Transform(p Polygon, origin mgl64.Vec2, angle float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = ToWorld(v, origin, angle)
	}
	return out
}
