package system

import (
	"time"

	coresys "github.com/lasercut/planetoids/internal/core/system"
	"github.com/lasercut/planetoids/internal/geom"
	"github.com/lasercut/planetoids/internal/planetoid"
)

// BoundsSystem recycles planetoids that drifted fully outside the arena.
// Recycling is deferred to the cleanup phase. Phase 3 (PostUpdate).
type BoundsSystem struct {
	mgr   *planetoid.Manager
	arena geom.Rect
}

func NewBoundsSystem(mgr *planetoid.Manager, arena geom.Rect) *BoundsSystem {
	return &BoundsSystem{mgr: mgr, arena: arena}
}

func (s *BoundsSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *BoundsSystem) Update(_ time.Duration) {
	for _, p := range s.mgr.Active() {
		outer := s.arena.Grow(geom.Radius(p.Polygon()))
		if !outer.Contains(p.Body().Position()) {
			s.mgr.QueueRecycle(p)
		}
	}
}
