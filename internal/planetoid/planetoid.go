package planetoid

import (
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lasercut/planetoids/internal/core/ecs"
	"github.com/lasercut/planetoids/internal/core/event"
	"github.com/lasercut/planetoids/internal/geom"
)

// Planetoid is one pooled convex rock. Its polygon is stored in body-local
// coordinates and replaced wholesale; the slot and body survive recycling.
type Planetoid struct {
	id   ecs.EntityID
	mgr  *Manager
	body Body

	polygon geom.Polygon
	area    float64
	density float64
	mass    float64
	color   color.RGBA

	fading    bool
	remaining time.Duration
}

func (p *Planetoid) ID() ecs.EntityID { return p.id }
func (p *Planetoid) Body() Body       { return p.body }

// Polygon returns the current local-frame boundary. Callers must not modify it.
func (p *Planetoid) Polygon() geom.Polygon { return p.polygon }

// WorldPolygon returns a copy of the boundary in world coordinates.
func (p *Planetoid) WorldPolygon() geom.Polygon {
	return geom.Transform(p.polygon, p.body.Position(), p.body.Rotation())
}

func (p *Planetoid) Area() float64    { return p.area }
func (p *Planetoid) Density() float64 { return p.density }

// Mass is density times area, scaled down linearly while fading.
func (p *Planetoid) Mass() float64 { return p.mass * p.Alpha() }

func (p *Planetoid) Color() color.RGBA     { return p.color }
func (p *Planetoid) SetColor(c color.RGBA) { p.color = c }

func (p *Planetoid) Fading() bool { return p.fading }

// Remaining is the fade time left; zero while solid.
func (p *Planetoid) Remaining() time.Duration { return p.remaining }

// Alpha is 1 while solid and falls linearly to 0 over the fade.
func (p *Planetoid) Alpha() float64 {
	if !p.fading {
		return 1
	}
	d := p.mgr.settings.FadeDuration
	if d <= 0 {
		return 0
	}
	return float64(p.remaining) / float64(d)
}

// Initialize replaces the polygon and density, recomputes mass and pushes
// both to the body. At or below the death area the planetoid starts fading.
func (p *Planetoid) Initialize(poly geom.Polygon, density float64) {
	p.polygon = poly
	p.area = geom.Area(poly)
	p.density = density
	p.mass = density * p.area

	p.body.SetShape(poly)
	p.body.SetMass(p.mass)

	p.fading = false
	p.remaining = 0
	if p.area <= p.mgr.settings.DeathArea {
		p.fading = true
		p.remaining = p.mgr.settings.FadeDuration
		event.Emit(p.mgr.bus, event.FadeStarted{ID: p.id, Area: p.area})
	}
}

// Slice cuts the planetoid along a world-space ray. On success the
// planetoid keeps one half in place and the returned fragment, taken from
// the pool, holds the other. Any rejection leaves the planetoid untouched.
func (p *Planetoid) Slice(ray geom.Ray, power float64) (*Planetoid, geom.Outcome) {
	if p.fading {
		return nil, geom.RejectedFading
	}

	pos, rot := p.body.Position(), p.body.Rotation()
	local := ray.ToLocal(pos, rot)
	res := geom.Slice(p.polygon, local.Start, local.End, p.mgr.settings.MinFragmentArea)
	if !res.OK() {
		return nil, res.Outcome
	}

	vel := p.body.Velocity()
	spin := p.body.AngularVelocity()

	p.Initialize(res.A, p.density)

	frag := p.mgr.GetNewOrRecycled()
	frag.color = p.color
	frag.body.SetPosition(pos)
	frag.body.SetRotation(rot)
	frag.Initialize(res.B, p.density)
	frag.body.SetVelocity(vel)
	frag.body.SetAngularVelocity(spin)

	p.separate(frag, ray, power)
	return frag, geom.Accepted
}

// separate pushes the two halves apart along the ray normal, each away
// from the cut line.
func (p *Planetoid) separate(frag *Planetoid, ray geom.Ray, power float64) {
	magnitude := power
	if p.mgr.impulse != nil {
		magnitude = p.mgr.impulse(ImpulseContext{
			Power: power,
			MassA: p.Mass(),
			MassB: frag.Mass(),
			AreaA: p.area,
			AreaB: frag.area,
		})
	}
	normal := geom.Perp(ray.Direction()).Mul(magnitude)

	centroid := geom.ToWorld(geom.Centroid(p.polygon), p.body.Position(), p.body.Rotation())
	if ray.Side(centroid) < 0 {
		normal = normal.Mul(-1)
	}
	p.body.ApplyImpulse(normal)
	frag.body.ApplyImpulse(normal.Mul(-1))
}

// Tick advances the fade by dt and reports whether it has run out.
// Solid planetoids never expire.
func (p *Planetoid) Tick(dt time.Duration) bool {
	if !p.fading {
		return false
	}
	p.remaining -= dt
	if p.remaining < 0 {
		p.remaining = 0
	}
	p.body.SetMass(p.Mass())
	return p.remaining == 0
}

// reset clears per-life state when the slot returns to the free list, which
// also cancels any fade in progress.
func (p *Planetoid) reset() {
	p.fading = false
	p.remaining = 0
	p.body.SetEnabled(false)
	p.body.SetVelocity(mgl64.Vec2{})
	p.body.SetAngularVelocity(0)
}

func (p *Planetoid) logFields() []zap.Field {
	return []zap.Field{
		zap.Uint64("id", uint64(p.id)),
		zap.Float64("area", p.area),
		zap.Bool("fading", p.fading),
	}
}
