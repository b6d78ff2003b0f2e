package system

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	coresys "github.com/lasercut/planetoids/internal/core/system"
	"github.com/lasercut/planetoids/internal/data"
	"github.com/lasercut/planetoids/internal/planetoid"
	"github.com/lasercut/planetoids/internal/scripting"
)

// SpawnerSystem keeps the arena populated. Every wave it asks the Lua
// calc_spawn_budget formula how many planetoids to add and draws each one
// from the weighted template table. Phase 2 (Update).
type SpawnerSystem struct {
	mgr       *planetoid.Manager
	table     *data.PlanetoidTable
	lua       *scripting.Engine
	target    int
	interval  int
	rng       *rand.Rand
	log       *zap.Logger
	tickCount int
	spawned   int
}

func NewSpawnerSystem(mgr *planetoid.Manager, table *data.PlanetoidTable, lua *scripting.Engine, target, interval int, rng *rand.Rand, log *zap.Logger) *SpawnerSystem {
	if interval <= 0 {
		interval = 1
	}
	return &SpawnerSystem{
		mgr:      mgr,
		table:    table,
		lua:      lua,
		target:   target,
		interval: interval,
		rng:      rng,
		log:      log,
	}
}

func (s *SpawnerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SpawnerSystem) Update(_ time.Duration) {
	// first wave on the first tick
	s.tickCount++
	if (s.tickCount-1)%s.interval != 0 {
		return
	}
	s.Wave()
}

// Wave spawns one budget's worth of planetoids and returns how many were
// placed.
func (s *SpawnerSystem) Wave() int {
	budget := s.lua.CalcSpawnBudget(s.mgr.ActiveCount(), s.target)
	placed := 0
	for i := 0; i < budget; i++ {
		tpl := s.table.Pick(s.rng)
		if tpl == nil {
			break
		}
		_, err := s.mgr.CreatePlanetoid(SpecFromTemplate(tpl))
		if err != nil {
			if errors.Is(err, planetoid.ErrNoSpawnRoom) {
				s.log.Warn("spawn skipped", zap.String("template", tpl.Name), zap.Error(err))
				continue
			}
			s.log.Error("spawn failed", zap.String("template", tpl.Name), zap.Error(err))
			break
		}
		placed++
	}
	s.spawned += placed
	return placed
}

// Spawned is the number of planetoids placed since start.
func (s *SpawnerSystem) Spawned() int { return s.spawned }

// SpecFromTemplate converts a data template to a spawn request.
func SpecFromTemplate(t *data.PlanetoidTemplate) planetoid.SpawnSpec {
	return planetoid.SpawnSpec{
		Name:    t.Name,
		Radius:  t.Radius,
		Sides:   t.Sides,
		Density: t.Density,
		Color:   t.RGBA(),
	}
}
