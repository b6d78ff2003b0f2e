package system

import (
	"time"

	coresys "github.com/lasercut/planetoids/internal/core/system"
	"github.com/lasercut/planetoids/internal/planetoid"
)

// NotifySystem delivers the pool's coalesced EnteredPlay/LeftPlay signals
// once per tick, after every mutation. Phase 5 (Output), registered first.
type NotifySystem struct {
	mgr *planetoid.Manager
}

func NewNotifySystem(mgr *planetoid.Manager) *NotifySystem {
	return &NotifySystem{mgr: mgr}
}

func (s *NotifySystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *NotifySystem) Update(_ time.Duration) {
	s.mgr.FlushSignals()
}
