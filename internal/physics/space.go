package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/lasercut/planetoids/internal/config"
	"github.com/lasercut/planetoids/internal/geom"
)

// minShapeMass keeps faded bodies integrable; Chipmunk rejects zero-mass
// dynamic bodies.
const minShapeMass = 1e-4

// categoryPlanetoid is the collision category every planetoid shape carries.
const categoryPlanetoid uint = 1

// Space wraps a Chipmunk2D space. Game loop goroutine only.
type Space struct {
	space  *cp.Space
	cfg    config.PhysicsConfig
	log    *zap.Logger
	bodies int
}

func NewSpace(cfg config.PhysicsConfig, log *zap.Logger) *Space {
	s := cp.NewSpace()
	s.SetGravity(cp.Vector{})
	s.SetDamping(cfg.Damping)
	if cfg.Iterations > 0 {
		s.Iterations = cfg.Iterations
	}
	return &Space{space: s, cfg: cfg, log: log}
}

// NewBody creates an enabled dynamic body without a shape. tag identifies
// the owner when the body is returned from a ray query.
func (s *Space) NewBody(tag uint32) *Body {
	b := &Body{
		space: s,
		body:  cp.NewBody(1, 1),
		tag:   tag,
	}
	b.body.UserData = b
	s.space.AddBody(b.body)
	b.enabled = true
	s.bodies++
	s.log.Debug("physics body created", zap.Uint32("tag", tag))
	return b
}

// Step advances the simulation by dt seconds.
func (s *Space) Step(dt float64) {
	s.space.Step(dt)
}

// BodyCount is the number of bodies ever created.
func (s *Space) BodyCount() int { return s.bodies }

// FindBodiesAlongRay returns every enabled body whose shape the segment
// origin + dir*maxDist touches, nearest first, each body once.
func (s *Space) FindBodiesAlongRay(origin, dir mgl64.Vec2, maxDist float64, mask uint) []*Body {
	if dir.Len() == 0 || maxDist <= 0 {
		return nil
	}
	end := origin.Add(dir.Normalize().Mul(maxDist))
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)

	type hit struct {
		body  *Body
		alpha float64
	}
	var hits []hit
	seen := make(map[*Body]int)
	s.space.SegmentQuery(toCP(origin), toCP(end), 0, filter,
		func(shape *cp.Shape, _, _ cp.Vector, alpha float64, _ interface{}) {
			b, ok := shape.UserData.(*Body)
			if !ok || !b.enabled {
				return
			}
			if i, dup := seen[b]; dup {
				if alpha < hits[i].alpha {
					hits[i].alpha = alpha
				}
				return
			}
			seen[b] = len(hits)
			hits = append(hits, hit{body: b, alpha: alpha})
		}, nil)

	// insertion sort, hit lists are short
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].alpha < hits[j-1].alpha; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	out := make([]*Body, len(hits))
	for i, h := range hits {
		out[i] = h.body
	}
	return out
}

// Body is a pooled rigid body. Its shape is replaced wholesale whenever the
// owner's polygon changes.
type Body struct {
	space   *Space
	body    *cp.Body
	shape   *cp.Shape
	tag     uint32
	mass    float64
	enabled bool
}

func (b *Body) Tag() uint32 { return b.tag }

func (b *Body) Position() mgl64.Vec2 { return fromCP(b.body.Position()) }

func (b *Body) SetPosition(pos mgl64.Vec2) {
	b.body.SetPosition(toCP(pos))
	b.reindex()
}

func (b *Body) Rotation() float64 { return b.body.Angle() }

func (b *Body) SetRotation(angle float64) {
	b.body.SetAngle(angle)
	b.reindex()
}

func (b *Body) Velocity() mgl64.Vec2 { return fromCP(b.body.Velocity()) }

func (b *Body) SetVelocity(v mgl64.Vec2) { b.body.SetVelocityVector(toCP(v)) }

func (b *Body) AngularVelocity() float64 { return b.body.AngularVelocity() }

func (b *Body) SetAngularVelocity(w float64) { b.body.SetAngularVelocity(w) }

// ApplyImpulse pushes the body through its center of gravity.
func (b *Body) ApplyImpulse(impulse mgl64.Vec2) {
	cog := b.body.LocalToWorld(b.body.CenterOfGravity())
	b.body.ApplyImpulseAtWorldPoint(toCP(impulse), cog)
}

// Mass returns the last mass set, before the integrable floor.
func (b *Body) Mass() float64 { return b.mass }

func (b *Body) SetMass(m float64) {
	b.mass = m
	if b.shape != nil {
		b.shape.SetMass(math.Max(m, minShapeMass))
	}
}

// SetShape replaces the collision polygon, given in body-local coordinates.
// The current mass carries over to the new shape.
func (b *Body) SetShape(poly geom.Polygon) {
	if b.shape != nil {
		if b.enabled {
			b.space.space.RemoveShape(b.shape)
		}
		b.shape = nil
	}
	if len(poly) < 3 {
		return
	}
	verts := make([]cp.Vector, len(poly))
	for i, v := range poly {
		verts[i] = toCP(v)
	}
	shape := cp.NewPolyShapeRaw(b.body, len(verts), verts, 0)
	shape.UserData = b
	shape.SetElasticity(b.space.cfg.Elasticity)
	shape.SetFriction(b.space.cfg.Friction)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryPlanetoid, cp.ALL_CATEGORIES))
	b.shape = shape
	if b.enabled {
		b.space.space.AddShape(shape)
	}
	b.shape.SetMass(math.Max(b.mass, minShapeMass))
}

// SetEnabled adds the body (and its shape) to the space or takes it out.
// A disabled body is invisible to ray queries and does not move.
func (b *Body) SetEnabled(on bool) {
	if on == b.enabled {
		return
	}
	sp := b.space.space
	if on {
		sp.AddBody(b.body)
		if b.shape != nil {
			sp.AddShape(b.shape)
		}
	} else {
		if b.shape != nil {
			sp.RemoveShape(b.shape)
		}
		sp.RemoveBody(b.body)
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
	}
	b.enabled = on
}

// reindex refreshes the shape's world vertices and its entry in the spatial
// index after a teleport; AddShape updates the shape from the body transform.
func (b *Body) reindex() {
	if b.enabled && b.shape != nil {
		sp := b.space.space
		sp.RemoveShape(b.shape)
		sp.AddShape(b.shape)
	}
}

func toCP(v mgl64.Vec2) cp.Vector   { return cp.Vector{X: v.X(), Y: v.Y()} }
func fromCP(v cp.Vector) mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }
