package system

import (
	"time"

	coresys "github.com/lasercut/planetoids/internal/core/system"
)

// Stepper advances a rigid-body simulation by dt seconds.
type Stepper interface {
	Step(dt float64)
}

// PhysicsSystem integrates the physics space once per tick. Phase 2 (Update).
type PhysicsSystem struct {
	space Stepper
}

func NewPhysicsSystem(space Stepper) *PhysicsSystem {
	return &PhysicsSystem{space: space}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *PhysicsSystem) Update(dt time.Duration) {
	s.space.Step(dt.Seconds())
}
