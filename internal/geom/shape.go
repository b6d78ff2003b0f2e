package geom

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle given by its bottom-left and top-right
// corners.
type Rect struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func (r Rect) Width() float64  { return r.Max.X() - r.Min.X() }
func (r Rect) Height() float64 { return r.Max.Y() - r.Min.Y() }

func (r Rect) Center() mgl64.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Contains reports whether pt is inside r, edges included.
func (r Rect) Contains(pt mgl64.Vec2) bool {
	return pt.X() >= r.Min.X() && pt.X() <= r.Max.X() &&
		pt.Y() >= r.Min.Y() && pt.Y() <= r.Max.Y()
}

// Shrink moves every side inward by margin. A margin larger than half the
// rectangle collapses it onto its center.
func (r Rect) Shrink(margin float64) Rect {
	c := r.Center()
	minX := math.Min(r.Min.X()+margin, c.X())
	minY := math.Min(r.Min.Y()+margin, c.Y())
	maxX := math.Max(r.Max.X()-margin, c.X())
	maxY := math.Max(r.Max.Y()-margin, c.Y())
	return Rect{Min: mgl64.Vec2{minX, minY}, Max: mgl64.Vec2{maxX, maxY}}
}

// Grow moves every side outward by margin.
func (r Rect) Grow(margin float64) Rect {
	d := mgl64.Vec2{margin, margin}
	return Rect{Min: r.Min.Sub(d), Max: r.Max.Add(d)}
}

// RandomPoint returns a uniformly distributed point inside r.
func (r Rect) RandomPoint(rng *rand.Rand) mgl64.Vec2 {
	return mgl64.Vec2{
		r.Min.X() + rng.Float64()*r.Width(),
		r.Min.Y() + rng.Float64()*r.Height(),
	}
}

// JitteredRegular builds a counter-clockwise convex polygon around the
// origin. The circle is split into sides equal sectors and one vertex is
// placed at a random angle inside each sector; jitter in [0,1] scales how far
// from the sector start the vertex may wander. All vertices sit on the
// circle of the given radius, so the ring stays convex.
func JitteredRegular(sides int, radius, jitter float64, rng *rand.Rand) Polygon {
	if sides < 3 {
		sides = 3
	}
	jitter = math.Max(0, math.Min(1, jitter))
	sector := 2 * math.Pi / float64(sides)
	p := make(Polygon, sides)
	for i := range p {
		angle := float64(i) * sector
		if rng != nil && jitter > 0 {
			angle += rng.Float64() * sector * jitter
		}
		s, c := math.Sincos(angle)
		p[i] = mgl64.Vec2{c * radius, s * radius}
	}
	return p
}
