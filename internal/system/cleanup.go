package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/lasercut/planetoids/internal/core/ecs"
	coresys "github.com/lasercut/planetoids/internal/core/system"
)

// CleanupSystem flushes the deferred recycle queue at tick end, after every
// fade has advanced. Phase 4 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	log   *zap.Logger
}

func NewCleanupSystem(world *ecs.World, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if n := s.world.FlushDestroyQueue(); n > 0 {
		s.log.Debug("recycled expired planetoids", zap.Int("count", n))
	}
}
