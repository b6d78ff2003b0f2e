package system

import (
	"time"

	coresys "github.com/lasercut/planetoids/internal/core/system"
	"github.com/lasercut/planetoids/internal/planetoid"
)

// FadeSystem advances every fading planetoid and queues expired ones for
// the cleanup phase. Phase 3 (PostUpdate).
type FadeSystem struct {
	mgr *planetoid.Manager
}

func NewFadeSystem(mgr *planetoid.Manager) *FadeSystem {
	return &FadeSystem{mgr: mgr}
}

func (s *FadeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *FadeSystem) Update(dt time.Duration) {
	s.mgr.AdvanceFades(dt)
}
