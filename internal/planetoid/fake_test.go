package planetoid

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lasercut/planetoids/internal/core/event"
	"github.com/lasercut/planetoids/internal/geom"
)

type fakeBody struct {
	tag      uint32
	pos      mgl64.Vec2
	rot      float64
	vel      mgl64.Vec2
	spin     float64
	mass     float64
	shape    geom.Polygon
	enabled  bool
	impulses []mgl64.Vec2
}

func (b *fakeBody) Tag() uint32                  { return b.tag }
func (b *fakeBody) Position() mgl64.Vec2         { return b.pos }
func (b *fakeBody) SetPosition(p mgl64.Vec2)     { b.pos = p }
func (b *fakeBody) Rotation() float64            { return b.rot }
func (b *fakeBody) SetRotation(r float64)        { b.rot = r }
func (b *fakeBody) Velocity() mgl64.Vec2         { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec2)     { b.vel = v }
func (b *fakeBody) AngularVelocity() float64     { return b.spin }
func (b *fakeBody) SetAngularVelocity(w float64) { b.spin = w }
func (b *fakeBody) ApplyImpulse(imp mgl64.Vec2)  { b.impulses = append(b.impulses, imp) }
func (b *fakeBody) SetMass(m float64)            { b.mass = m }
func (b *fakeBody) SetShape(poly geom.Polygon)   { b.shape = poly.Clone() }
func (b *fakeBody) SetEnabled(on bool)           { b.enabled = on }

// fakePhysics reports every enabled body whose bounding circle the ray
// segment touches, in creation order.
type fakePhysics struct {
	bodies []*fakeBody
}

func (f *fakePhysics) NewBody(tag uint32) Body {
	b := &fakeBody{tag: tag, enabled: true}
	f.bodies = append(f.bodies, b)
	return b
}

func (f *fakePhysics) FindBodiesAlongRay(origin, dir mgl64.Vec2, maxDist float64, _ uint) []Body {
	if dir.Len() == 0 {
		return nil
	}
	end := origin.Add(dir.Normalize().Mul(maxDist))
	var out []Body
	for _, b := range f.bodies {
		if !b.enabled || len(b.shape) == 0 {
			continue
		}
		center := geom.ToWorld(geom.Centroid(b.shape), b.pos, b.rot)
		if segmentDistance(center, origin, end) <= geom.Radius(b.shape)+1e-9 {
			out = append(out, b)
		}
	}
	return out
}

func segmentDistance(pt, a, b mgl64.Vec2) float64 {
	ab := b.Sub(a)
	t := 0.0
	if l := ab.Dot(ab); l > 0 {
		t = math.Max(0, math.Min(1, pt.Sub(a).Dot(ab)/l))
	}
	return pt.Sub(a.Add(ab.Mul(t))).Len()
}

type fixedBounds geom.Rect

func (b fixedBounds) Rect() geom.Rect { return geom.Rect(b) }

func arena() fixedBounds {
	return fixedBounds{Min: mgl64.Vec2{-10, -10}, Max: mgl64.Vec2{10, 10}}
}

func testOptions() Options {
	return Options{
		Settings: Settings{
			MinFragmentArea: 0.05,
			DeathArea:       0.6,
			FadeDuration:    time.Second,
			LaserRange:      40,
			RayMask:         ^uint(0),
		},
		Spawn: SpawnSettings{
			DeadZoneRadius: 3,
			Attempts:       1000,
			Jitter:         0.6,
			SpeedMax:       1,
			SpinMax:        1,
		},
		Bounds: arena(),
		Rand:   rand.New(rand.NewSource(1)),
	}
}

func newTestManager(opts Options) (*Manager, *fakePhysics) {
	phys := &fakePhysics{}
	return NewManager(phys, opts, zap.NewNop()), phys
}

func newBusManager() (*Manager, *fakePhysics, *event.Bus) {
	opts := testOptions()
	opts.Bus = event.NewBus()
	m, phys := newTestManager(opts)
	return m, phys, opts.Bus
}

func square() geom.Polygon {
	return geom.Polygon{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
}

func xAxisRay() geom.Ray {
	return geom.Ray{Start: mgl64.Vec2{-2, 0}, End: mgl64.Vec2{2, 0}}
}

func nearVec(a, b mgl64.Vec2, tol float64) bool {
	return math.Abs(a[0]-b[0]) <= tol && math.Abs(a[1]-b[1]) <= tol
}

func samePolygon(a, b geom.Polygon) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkClosure(m *Manager) bool {
	return m.ActiveCount()+m.FreeCount() == m.Constructed()
}
