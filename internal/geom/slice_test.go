package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func square() Polygon {
	return Polygon{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
}

// near compares component-wise with an absolute tolerance, so zero
// components are held to tol as well.
func near(a, b mgl64.Vec2, tol float64) bool {
	return math.Abs(a[0]-b[0]) <= tol && math.Abs(a[1]-b[1]) <= tol
}

func containsPoint(p Polygon, pt mgl64.Vec2) bool {
	for _, v := range p {
		if near(v, pt, 1e-9) {
			return true
		}
	}
	return false
}

func TestSignedAreaWinding(t *testing.T) {
	sq := square()
	if got := SignedArea(sq); got != 4 {
		t.Errorf("Expected signed area 4, got %v", got)
	}

	reversed := Polygon{sq[3], sq[2], sq[1], sq[0]}
	if got := SignedArea(reversed); got != -4 {
		t.Errorf("Expected signed area -4 for clockwise ring, got %v", got)
	}
	if Area(reversed) != 4 {
		t.Error("Area should be the absolute signed area")
	}
}

func TestSignedAreaDegenerate(t *testing.T) {
	if SignedArea(Polygon{{0, 0}, {1, 1}}) != 0 {
		t.Error("Two-vertex ring should have zero area")
	}
}

func TestIntersectLines(t *testing.T) {
	pt, ok := IntersectLines(mgl64.Vec2{0, -1}, mgl64.Vec2{0, 1}, mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0})
	if !ok {
		t.Fatal("Perpendicular lines should intersect")
	}
	if !near(pt, mgl64.Vec2{0, 0}, 1e-12) {
		t.Errorf("Expected origin, got %v", pt)
	}
}

func TestIntersectLinesParallel(t *testing.T) {
	if _, ok := IntersectLines(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}, mgl64.Vec2{1, 1}); ok {
		t.Error("Parallel lines must not report an intersection")
	}
}

func TestInSegmentBoundsHalfOpen(t *testing.T) {
	a, b := mgl64.Vec2{0, 0}, mgl64.Vec2{2, 2}
	if !InSegmentBounds(mgl64.Vec2{0, 0}, a, b) {
		t.Error("Lower bound should be inclusive")
	}
	if InSegmentBounds(mgl64.Vec2{2, 2}, a, b) {
		t.Error("Upper bound should be exclusive")
	}
}

func TestInSegmentBoundsAxisAligned(t *testing.T) {
	a, b := mgl64.Vec2{1, -1}, mgl64.Vec2{1, 1}
	if !InSegmentBounds(mgl64.Vec2{1, 0}, a, b) {
		t.Error("Vertical segment should accept its own x coordinate")
	}
	if InSegmentBounds(mgl64.Vec2{1.5, 0}, a, b) {
		t.Error("Vertical segment should reject other x coordinates")
	}
}

func TestSliceSquareAlongXAxis(t *testing.T) {
	sq := square()
	res := Slice(sq, mgl64.Vec2{-2, 0}, mgl64.Vec2{2, 0}, 0.01)
	if !res.OK() {
		t.Fatalf("Expected accepted slice, got %v", res.Outcome)
	}

	if a := Area(res.A); math.Abs(a-2) > 1e-9 {
		t.Errorf("Expected fragment A area 2, got %v", a)
	}
	if b := Area(res.B); math.Abs(b-2) > 1e-9 {
		t.Errorf("Expected fragment B area 2, got %v", b)
	}

	for _, pt := range []mgl64.Vec2{{-1, 0}, {1, 0}} {
		if !containsPoint(res.A, pt) || !containsPoint(res.B, pt) {
			t.Errorf("Both fragments should share intersection point %v", pt)
		}
	}
	if len(res.A) != 4 || len(res.B) != 4 {
		t.Errorf("Expected two rectangles, got %d and %d vertices", len(res.A), len(res.B))
	}
}

func TestSliceChainOrder(t *testing.T) {
	res := Slice(square(), mgl64.Vec2{-2, 0}, mgl64.Vec2{2, 0}, 0.01)
	if !res.OK() {
		t.Fatalf("Expected accepted slice, got %v", res.Outcome)
	}
	// First crossing is on edge 1 (x=1), second on edge 3 (x=-1).
	wantA := Polygon{{1, 1}, {-1, 1}, {-1, 0}, {1, 0}}
	wantB := Polygon{{-1, -1}, {1, -1}, {1, 0}, {-1, 0}}
	for i := range wantA {
		if !near(res.A[i], wantA[i], 1e-12) {
			t.Errorf("A[%d]: expected %v, got %v", i, wantA[i], res.A[i])
		}
		if !near(res.B[i], wantB[i], 1e-12) {
			t.Errorf("B[%d]: expected %v, got %v", i, wantB[i], res.B[i])
		}
	}
	if SignedArea(res.A) <= 0 || SignedArea(res.B) <= 0 {
		t.Error("Fragments should keep the source winding")
	}
}

func TestSliceDoesNotModifyInput(t *testing.T) {
	sq := square()
	before := sq.Clone()
	Slice(sq, mgl64.Vec2{-2, 0.3}, mgl64.Vec2{2, -0.2}, 0.01)
	for i := range sq {
		if sq[i] != before[i] {
			t.Fatalf("Input vertex %d changed: %v -> %v", i, before[i], sq[i])
		}
	}
}

func TestSliceRejectsSmallFragment(t *testing.T) {
	sq := square()
	before := sq.Clone()
	// Cut a sliver of height 0.05 (area 0.1) off the top.
	res := Slice(sq, mgl64.Vec2{-2, 0.95}, mgl64.Vec2{2, 0.95}, 0.5)
	if res.Outcome != RejectedFragmentArea {
		t.Fatalf("Expected fragment_area rejection, got %v", res.Outcome)
	}
	if res.A != nil || res.B != nil {
		t.Error("Rejected slice must not return fragments")
	}
	for i := range sq {
		if sq[i] != before[i] {
			t.Fatal("Rejected slice modified the polygon")
		}
	}
}

func TestSliceRayTooShort(t *testing.T) {
	// Segment ends inside the polygon: only one crossing.
	res := Slice(square(), mgl64.Vec2{-2, 0}, mgl64.Vec2{0, 0}, 0.01)
	if res.Outcome != RejectedCrossingCount {
		t.Errorf("Expected crossing_count, got %v", res.Outcome)
	}
}

func TestSliceMiss(t *testing.T) {
	res := Slice(square(), mgl64.Vec2{-2, 3}, mgl64.Vec2{2, 3}, 0.01)
	if res.Outcome != RejectedNoCrossing {
		t.Errorf("Expected no_crossing, got %v", res.Outcome)
	}
}

func TestSliceDegenerateRay(t *testing.T) {
	res := Slice(square(), mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0}, 0.01)
	if res.Outcome != RejectedDegenerate {
		t.Errorf("Expected degenerate, got %v", res.Outcome)
	}
}

func TestSliceConservesArea(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	accepted := 0
	for trial := 0; trial < 200; trial++ {
		poly := JitteredRegular(8, 2+rng.Float64()*3, 0.8, rng)
		angle := rng.Float64() * math.Pi
		dir := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
		offset := Perp(dir).Mul((rng.Float64()*2 - 1) * 1.5)
		start := offset.Sub(dir.Mul(10))
		end := offset.Add(dir.Mul(10))

		res := Slice(poly, start, end, 0.01)
		if !res.OK() {
			continue
		}
		accepted++
		total := Area(poly)
		sum := Area(res.A) + Area(res.B)
		if math.Abs(sum-total) > 1e-4*total {
			t.Fatalf("Trial %d: area %v split into %v", trial, total, sum)
		}
		if !IsConvex(res.A) || !IsConvex(res.B) {
			t.Fatalf("Trial %d: fragments should stay convex", trial)
		}
	}
	if accepted == 0 {
		t.Fatal("Expected at least one accepted slice")
	}
}

func TestOutcomeString(t *testing.T) {
	if Accepted.String() != "accepted" || RejectedFading.String() != "fading" {
		t.Error("Outcome names changed")
	}
}

func TestSliceThroughSingleVertex(t *testing.T) {
	// Line y = x + 2 touches the square only at (-1,1). The half-open edge
	// bounds count that corner once, on the top edge.
	res := Slice(square(), mgl64.Vec2{-3, -1}, mgl64.Vec2{1, 3}, 0.01)
	if res.Outcome != RejectedCrossingCount {
		t.Fatalf("Expected crossing_count, got %v", res.Outcome)
	}
	if len(res.Points) != 1 {
		t.Fatalf("Expected 1 crossing, got %d", len(res.Points))
	}
	if res.Points[0].Edge != 2 || !near(res.Points[0].Point, mgl64.Vec2{-1, 1}, 1e-12) {
		t.Errorf("Expected crossing at (-1,1) on edge 2, got %+v", res.Points[0])
	}
}

func TestSliceDiagonalThroughTwoVertices(t *testing.T) {
	sq := square()
	before := sq.Clone()
	// (-1,-1) is the inclusive end of both adjacent edges and (1,1) the
	// exclusive end of both of its edges, so both crossings land on the
	// same corner and one chain collapses to zero area.
	res := Slice(sq, mgl64.Vec2{-2, -2}, mgl64.Vec2{2, 2}, 0.05)
	if res.Outcome != RejectedFragmentArea {
		t.Fatalf("Expected fragment_area, got %v", res.Outcome)
	}
	if len(res.Points) != 2 {
		t.Fatalf("Expected 2 crossings, got %d", len(res.Points))
	}
	for _, sp := range res.Points {
		if !near(sp.Point, mgl64.Vec2{-1, -1}, 1e-12) {
			t.Errorf("Expected both crossings at (-1,-1), got %v", sp.Point)
		}
	}
	if res.A != nil || res.B != nil {
		t.Error("Rejected slice must not return fragments")
	}
	for i := range sq {
		if sq[i] != before[i] {
			t.Fatal("Rejected slice modified the polygon")
		}
	}
}

func TestSliceConcaveFourCrossings(t *testing.T) {
	// U shape opening upward; y=2 passes through both arms.
	u := Polygon{{0, 0}, {3, 0}, {3, 3}, {2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3}}
	res := Slice(u, mgl64.Vec2{-1, 2}, mgl64.Vec2{4, 2}, 0.01)
	if res.Outcome != RejectedCrossingCount {
		t.Fatalf("Expected crossing_count, got %v", res.Outcome)
	}
	if len(res.Points) != 4 {
		t.Fatalf("Expected 4 crossings, got %d", len(res.Points))
	}
	wantX := []float64{3, 2, 1, 0}
	for i, sp := range res.Points {
		if !near(sp.Point, mgl64.Vec2{wantX[i], 2}, 1e-12) {
			t.Errorf("Crossing %d: expected (%v,2), got %v", i, wantX[i], sp.Point)
		}
	}
}
