package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateExtent is the width under which a bounding box axis is treated
// as a single coordinate (vertical or horizontal segments).
const degenerateExtent = 1e-9

// Outcome is the result class of a slice attempt. Every value except
// Accepted is an expected, non-fatal rejection.
type Outcome int

const (
	Accepted Outcome = iota
	RejectedDegenerate
	RejectedNoCrossing
	RejectedCrossingCount
	RejectedFragmentArea
	// RejectedFading is never produced by Slice; planetoids report it when
	// a cut reaches a fragment that is already fading out.
	RejectedFading
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case RejectedDegenerate:
		return "degenerate"
	case RejectedNoCrossing:
		return "no_crossing"
	case RejectedCrossingCount:
		return "crossing_count"
	case RejectedFragmentArea:
		return "fragment_area"
	case RejectedFading:
		return "fading"
	}
	return "unknown"
}

// SlicePoint is a boundary crossing: where it happened and on which edge.
type SlicePoint struct {
	Point mgl64.Vec2
	Edge  int
}

// SliceResult carries the two chains of an accepted slice, or the reason it
// was refused. A and B are nil unless Outcome is Accepted.
type SliceResult struct {
	A, B    Polygon
	Points  []SlicePoint
	Outcome Outcome
}

func (r SliceResult) OK() bool { return r.Outcome == Accepted }

// IntersectLines intersects the infinite lines through (p1,p2) and (p3,p4)
// using the determinant form. It returns false for parallel or degenerate
// input instead of producing infinities.
func IntersectLines(p1, p2, p3, p4 mgl64.Vec2) (mgl64.Vec2, bool) {
	x1, y1 := p1.X(), p1.Y()
	x2, y2 := p2.X(), p2.Y()
	x3, y3 := p3.X(), p3.Y()
	x4, y4 := p4.X(), p4.Y()

	den := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if den == 0 {
		return mgl64.Vec2{}, false
	}
	a := x1*y2 - y1*x2
	b := x3*y4 - y3*x4
	px := (a*(x3-x4) - (x1-x2)*b) / den
	py := (a*(y3-y4) - (y1-y2)*b) / den
	if math.IsNaN(px) || math.IsNaN(py) || math.IsInf(px, 0) || math.IsInf(py, 0) {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{px, py}, true
}

// InSegmentBounds reports whether pt lies in the bounding box of segment
// (a,b). Each axis is half-open, [min, max). An axis with no extent accepts
// only the shared coordinate.
func InSegmentBounds(pt, a, b mgl64.Vec2) bool {
	return inRange(pt.X(), a.X(), b.X()) && inRange(pt.Y(), a.Y(), b.Y())
}

func inRange(v, a, b float64) bool {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo <= degenerateExtent*math.Max(1, math.Abs(lo)) {
		return math.Abs(v-lo) <= degenerateExtent*math.Max(1, math.Abs(lo))
	}
	return v >= lo && v < hi
}

// Slice cuts p along the segment (rayStart, rayEnd). The cut is accepted only
// when the segment crosses exactly two edges and both resulting chains have
// at least minArea. The input polygon is never modified.
func Slice(p Polygon, rayStart, rayEnd mgl64.Vec2, minArea float64) SliceResult {
	if len(p) < 3 || rayStart == rayEnd {
		return SliceResult{Outcome: RejectedDegenerate}
	}

	var hits []SlicePoint
	for i := range p {
		a, b := p.Edge(i)
		pt, ok := IntersectLines(a, b, rayStart, rayEnd)
		if !ok {
			continue
		}
		if !InSegmentBounds(pt, a, b) || !InSegmentBounds(pt, rayStart, rayEnd) {
			continue
		}
		hits = append(hits, SlicePoint{Point: pt, Edge: i})
	}

	switch {
	case len(hits) == 0:
		return SliceResult{Outcome: RejectedNoCrossing}
	case len(hits) != 2:
		return SliceResult{Points: hits, Outcome: RejectedCrossingCount}
	}

	first, second := hits[0], hits[1]
	i, j := first.Edge, second.Edge
	n := len(p)

	chainA := make(Polygon, 0, j-i+2)
	for k := i + 1; k <= j; k++ {
		chainA = append(chainA, p[k])
	}
	chainA = append(chainA, second.Point, first.Point)

	chainB := make(Polygon, 0, n-(j-i)+2)
	for k := j + 1; k <= i+n; k++ {
		chainB = append(chainB, p[k%n])
	}
	chainB = append(chainB, first.Point, second.Point)

	if Area(chainA) < minArea || Area(chainB) < minArea {
		return SliceResult{Points: hits, Outcome: RejectedFragmentArea}
	}
	return SliceResult{A: chainA, B: chainB, Points: hits, Outcome: Accepted}
}
