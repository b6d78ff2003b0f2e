package planetoid

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lasercut/planetoids/internal/geom"
)

// SpawnSpec describes the planetoid CreatePlanetoid builds.
type SpawnSpec struct {
	Name    string
	Radius  float64
	Sides   int
	Density float64
	Color   color.RGBA
}

// CreatePlanetoid places a new planetoid at a random point inside the arena
// (kept one radius away from the edges) and outside the dead-zone around
// the arena center, with a jittered regular outline and random drift.
func (m *Manager) CreatePlanetoid(spec SpawnSpec) (*Planetoid, error) {
	pos, err := m.spawnPoint(spec.Radius)
	if err != nil {
		return nil, err
	}

	p := m.GetNewOrRecycled()
	p.color = spec.Color
	p.body.SetPosition(pos)
	p.body.SetRotation(m.rng.Float64() * 2 * math.Pi)
	p.Initialize(geom.JitteredRegular(spec.Sides, spec.Radius, m.spawn.Jitter, m.rng), spec.Density)

	heading := m.rng.Float64() * 2 * math.Pi
	speed := m.rng.Float64() * m.spawn.SpeedMax
	p.body.SetVelocity(geom.Rotate(mgl64.Vec2{speed, 0}, heading))
	p.body.SetAngularVelocity((m.rng.Float64()*2 - 1) * m.spawn.SpinMax)

	m.log.Debug("planetoid spawned",
		append(p.logFields(),
			zap.String("template", spec.Name),
			zap.Float64("x", pos.X()),
			zap.Float64("y", pos.Y()),
		)...,
	)
	return p, nil
}

// spawnPoint rejection-samples a position for a planetoid of the given radius.
func (m *Manager) spawnPoint(radius float64) (mgl64.Vec2, error) {
	arena := m.bounds.Rect()
	area := arena.Shrink(radius)
	center := arena.Center()
	attempts := m.spawn.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		pt := area.RandomPoint(m.rng)
		if pt.Sub(center).Len() >= m.spawn.DeadZoneRadius {
			return pt, nil
		}
	}
	return mgl64.Vec2{}, fmt.Errorf("radius %.2f after %d attempts: %w", radius, attempts, ErrNoSpawnRoom)
}
