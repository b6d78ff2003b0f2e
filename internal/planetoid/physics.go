package planetoid

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lasercut/planetoids/internal/geom"
)

// Body is the rigid body backing one pooled planetoid. The planetoid owns
// the polygon; the body only receives copies of it.
type Body interface {
	Tag() uint32

	Position() mgl64.Vec2
	SetPosition(mgl64.Vec2)
	Rotation() float64
	SetRotation(float64)
	Velocity() mgl64.Vec2
	SetVelocity(mgl64.Vec2)
	AngularVelocity() float64
	SetAngularVelocity(float64)

	ApplyImpulse(mgl64.Vec2)
	SetMass(float64)
	SetShape(geom.Polygon)
	SetEnabled(bool)
}

// Physics creates bodies and answers ray queries. Bodies are tagged with the
// pool slot index of their owner.
type Physics interface {
	NewBody(tag uint32) Body
	FindBodiesAlongRay(origin, dir mgl64.Vec2, maxDist float64, mask uint) []Body
}

// Bounds supplies the visible world rectangle.
type Bounds interface {
	Rect() geom.Rect
}

// ImpulseContext describes a completed cut for the impulse formula.
type ImpulseContext struct {
	Power float64
	MassA float64
	MassB float64
	AreaA float64
	AreaB float64
}

// ImpulseFunc returns the separating impulse magnitude for a cut.
type ImpulseFunc func(ImpulseContext) float64
