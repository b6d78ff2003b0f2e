package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/lasercut/planetoids/internal/geom"
)

func TestBuildMeshFan(t *testing.T) {
	poly := geom.Polygon{{0, 0}, {2, 0}, {3, 1}, {2, 2}, {0, 2}}
	m := BuildMesh(poly, color.RGBA{R: 255, A: 255})

	if m.Triangles() != 3 {
		t.Fatalf("Expected 3 triangles, got %d", m.Triangles())
	}
	want := []uint16{0, 1, 2, 0, 2, 3, 0, 3, 4}
	for i, idx := range want {
		if m.Indices[i] != idx {
			t.Errorf("Index %d: expected %d, got %d", i, idx, m.Indices[i])
		}
	}

	area := 0.0
	for i := 0; i < len(m.Indices); i += 3 {
		tri := geom.Polygon{m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]}
		area += geom.Area(tri)
	}
	if math.Abs(area-geom.Area(poly)) > 1e-12 {
		t.Errorf("Fan area %v does not cover polygon area %v", area, geom.Area(poly))
	}
}

func TestBuildMeshCopiesVertices(t *testing.T) {
	poly := geom.Polygon{{0, 0}, {1, 0}, {0, 1}}
	m := BuildMesh(poly, color.RGBA{})
	m.Vertices[0][0] = 9
	if poly[0][0] != 0 {
		t.Error("Mesh must not alias the polygon")
	}
}

func TestBuildMeshDegenerate(t *testing.T) {
	m := BuildMesh(geom.Polygon{{0, 0}, {1, 0}}, color.RGBA{})
	if m.Triangles() != 0 {
		t.Errorf("Expected no triangles, got %d", m.Triangles())
	}
}

func TestFaded(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if got := Faded(c, 1); got != c {
		t.Errorf("Expected unchanged color, got %v", got)
	}
	if got := Faded(c, 0.5); got != (color.RGBA{R: 100, G: 50, B: 25, A: 128}) {
		t.Errorf("Expected half color, got %v", got)
	}
	if got := Faded(c, -1); got != (color.RGBA{}) {
		t.Errorf("Expected transparent, got %v", got)
	}
}
