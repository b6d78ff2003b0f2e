package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lasercut/planetoids/internal/config"
	"github.com/lasercut/planetoids/internal/core/ecs"
	coresys "github.com/lasercut/planetoids/internal/core/system"
	"github.com/lasercut/planetoids/internal/geom"
	"github.com/lasercut/planetoids/internal/planetoid"
)

// LaserSystem is the headless ray source. Every Interval ticks it fires a
// chord of laser_range length through a random active planetoid (or a
// random arena point when none are active). Phase 0 (Input).
type LaserSystem struct {
	mgr       *planetoid.Manager
	cfg       config.LaserConfig
	length    float64
	arena     geom.Rect
	rng       *rand.Rand
	log       *zap.Logger
	tickCount int
	shots     int
}

func NewLaserSystem(mgr *planetoid.Manager, cfg config.LaserConfig, length float64, arena geom.Rect, rng *rand.Rand, log *zap.Logger) *LaserSystem {
	return &LaserSystem{
		mgr:    mgr,
		cfg:    cfg,
		length: length,
		arena:  arena,
		rng:    rng,
		log:    log,
	}
}

func (s *LaserSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *LaserSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.cfg.Interval <= 0 || s.tickCount%s.cfg.Interval != 0 {
		return
	}
	s.Fire(s.aim())
}

// Fire cuts along ray with the configured power. Reverse controls flip the
// ray so it is traversed from End to Start.
func (s *LaserSystem) Fire(ray geom.Ray) []ecs.EntityID {
	if s.cfg.ReverseControls {
		ray = ray.Reversed()
	}
	s.shots++
	frags := s.mgr.SliceAlong(ray, s.cfg.Power)
	s.log.Debug("laser fired",
		zap.Int("shot", s.shots),
		zap.Float64("x0", ray.Start.X()),
		zap.Float64("y0", ray.Start.Y()),
		zap.Float64("x1", ray.End.X()),
		zap.Float64("y1", ray.End.Y()),
		zap.Int("fragments", len(frags)),
	)
	return frags
}

// Shots is the number of rays fired.
func (s *LaserSystem) Shots() int { return s.shots }

func (s *LaserSystem) aim() geom.Ray {
	target := s.arena.RandomPoint(s.rng)
	if active := s.mgr.Active(); len(active) > 0 {
		p := active[s.rng.Intn(len(active))]
		// offset the aim point so cuts are not always through the middle
		r := geom.Radius(p.Polygon()) * 0.4 * s.rng.Float64()
		target = p.Body().Position().Add(geom.Rotate(mgl64.Vec2{r, 0}, s.rng.Float64()*2*math.Pi))
	}
	dir := geom.Rotate(mgl64.Vec2{1, 0}, s.rng.Float64()*math.Pi)
	half := dir.Mul(s.length / 2)
	return geom.Ray{Start: target.Sub(half), End: target.Add(half)}
}
