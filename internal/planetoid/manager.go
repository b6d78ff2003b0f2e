package planetoid

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/lasercut/planetoids/internal/core/ecs"
	"github.com/lasercut/planetoids/internal/core/event"
	"github.com/lasercut/planetoids/internal/geom"
)

var (
	// ErrInvalidPlanetoid is returned for IDs that do not name an active planetoid.
	ErrInvalidPlanetoid = errors.New("invalid planetoid")
	// ErrNoSpawnRoom is returned when no spawn position satisfies the arena constraints.
	ErrNoSpawnRoom = errors.New("no room to spawn planetoid")
)

// Settings are the slicing and fade thresholds shared by every planetoid.
type Settings struct {
	MinFragmentArea float64
	DeathArea       float64
	FadeDuration    time.Duration
	LaserRange      float64
	RayMask         uint
}

// SpawnSettings drive CreatePlanetoid.
type SpawnSettings struct {
	DeadZoneRadius float64
	Attempts       int
	Jitter         float64
	SpeedMax       float64
	SpinMax        float64
}

type Options struct {
	Settings Settings
	Spawn    SpawnSettings
	Bounds   Bounds
	Impulse  ImpulseFunc // nil applies the raw laser power
	Bus      *event.Bus  // nil drops slice and fade events
	Rand     *rand.Rand
}

// Manager owns every planetoid instance. Slots live in an arena indexed by
// the pool's slot index; the pool's active set and LIFO free list decide
// which slots are in play. Game loop goroutine only.
type Manager struct {
	phys     Physics
	world    *ecs.World
	slots    []*Planetoid
	settings Settings
	spawn    SpawnSettings
	bounds   Bounds
	impulse  ImpulseFunc
	bus      *event.Bus
	rng      *rand.Rand
	log      *zap.Logger

	// EnteredPlay and LeftPlay fire at most once per tick, when the output
	// phase flushes them.
	EnteredPlay *event.Signal
	LeftPlay    *event.Signal
}

func NewManager(phys Physics, opts Options, log *zap.Logger) *Manager {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &Manager{
		phys:        phys,
		world:       ecs.NewWorld(),
		settings:    opts.Settings,
		spawn:       opts.Spawn,
		bounds:      opts.Bounds,
		impulse:     opts.Impulse,
		bus:         opts.Bus,
		rng:         rng,
		log:         log,
		EnteredPlay: event.NewSignal("entered_play"),
		LeftPlay:    event.NewSignal("left_play"),
	}
	m.world.OnRelease(func(id ecs.EntityID) {
		m.Recycle(m.slots[id.Index()])
	})
	return m
}

// World exposes the deferred destruction queue to the cleanup phase.
func (m *Manager) World() *ecs.World { return m.world }

func (m *Manager) Settings() Settings { return m.settings }

// GetNewOrRecycled takes the most recently freed slot, or constructs a new
// planetoid when the free list is empty. The result is active, enabled and
// has no polygon until Initialize.
func (m *Manager) GetNewOrRecycled() *Planetoid {
	id, reused := m.world.CreateEntity()
	var p *Planetoid
	if reused {
		p = m.slots[id.Index()]
		p.id = id
		p.body.SetEnabled(true)
	} else {
		p = &Planetoid{
			id:   id,
			mgr:  m,
			body: m.phys.NewBody(id.Index()),
		}
		m.slots = append(m.slots, p)
	}
	m.EnteredPlay.Trigger()
	m.log.Debug("planetoid entered play",
		zap.Uint64("id", uint64(id)),
		zap.Bool("reused", reused),
	)
	return p
}

// Recycle returns an active planetoid to the free list and cancels its fade.
// Recycling a planetoid that is not active is a no-op; the result reports
// whether anything changed.
func (m *Manager) Recycle(p *Planetoid) bool {
	if p == nil || p.mgr != m || !m.world.Alive(p.id) {
		return false
	}
	id := p.id
	p.reset()
	m.world.Pool().Destroy(id)
	m.LeftPlay.Trigger()
	event.Emit(m.bus, event.Recycled{ID: id})
	m.log.Debug("planetoid left play", zap.Uint64("id", uint64(id)))
	return true
}

// QueueRecycle defers Recycle to the cleanup phase. Entries for planetoids
// recycled in the meantime are dropped.
func (m *Manager) QueueRecycle(p *Planetoid) {
	m.world.MarkForDestruction(p.id)
}

// ClearAll recycles every active planetoid. Listeners see one LeftPlay.
func (m *Manager) ClearAll() int {
	active := m.Active()
	for _, p := range active {
		m.Recycle(p)
	}
	if len(active) > 0 {
		m.log.Info("cleared planetoids", zap.Int("count", len(active)))
	}
	return len(active)
}

// SliceAlong cuts every active planetoid the ray crosses, in hit order. A ray
// longer than the laser range is shortened to it before querying and cutting.
// Fragments produced during the sweep are not cut again by the same ray.
// Returns the IDs of the new fragments.
func (m *Manager) SliceAlong(ray geom.Ray, power float64) []ecs.EntityID {
	length := ray.Length()
	if m.settings.LaserRange > 0 && length > m.settings.LaserRange {
		length = m.settings.LaserRange
		ray = geom.RayFrom(ray.Start, ray.Direction(), length)
	}
	bodies := m.phys.FindBodiesAlongRay(ray.Start, ray.Direction(), length, m.settings.RayMask)
	if len(bodies) == 0 {
		return nil
	}

	targets := make([]*Planetoid, 0, len(bodies))
	for _, b := range bodies {
		id, ok := m.world.Pool().Current(b.Tag())
		if !ok || int(id.Index()) >= len(m.slots) {
			continue
		}
		targets = append(targets, m.slots[id.Index()])
	}

	var fragments []ecs.EntityID
	for _, p := range targets {
		source := p.id
		frag, outcome := p.Slice(ray, power)
		if frag == nil {
			event.Emit(m.bus, event.SliceRejected{Target: source, Reason: outcome.String()})
			m.log.Debug("slice rejected",
				zap.Uint64("id", uint64(source)),
				zap.Stringer("outcome", outcome),
			)
			continue
		}
		fragments = append(fragments, frag.id)
		event.Emit(m.bus, event.Sliced{
			Source:   source,
			Fragment: frag.id,
			AreaA:    p.area,
			AreaB:    frag.area,
		})
		m.log.Debug("planetoid sliced",
			zap.Uint64("source", uint64(source)),
			zap.Uint64("fragment", uint64(frag.id)),
			zap.Float64("area_a", p.area),
			zap.Float64("area_b", frag.area),
		)
	}
	return fragments
}

// AdvanceFades ticks every fading planetoid and queues the expired ones for
// recycling. Returns the number queued.
func (m *Manager) AdvanceFades(dt time.Duration) int {
	expired := 0
	m.world.Pool().Each(func(id ecs.EntityID) {
		p := m.slots[id.Index()]
		if p.Tick(dt) {
			m.QueueRecycle(p)
			expired++
		}
	})
	return expired
}

// Planetoid resolves an ID. Stale or unknown IDs fail with ErrInvalidPlanetoid.
func (m *Manager) Planetoid(id ecs.EntityID) (*Planetoid, error) {
	if int(id.Index()) >= len(m.slots) || !m.world.Alive(id) {
		return nil, fmt.Errorf("planetoid %d: %w", uint64(id), ErrInvalidPlanetoid)
	}
	return m.slots[id.Index()], nil
}

// Active returns the planetoids in play in slot order.
func (m *Manager) Active() []*Planetoid {
	out := make([]*Planetoid, 0, m.world.Pool().ActiveCount())
	m.world.Pool().Each(func(id ecs.EntityID) {
		out = append(out, m.slots[id.Index()])
	})
	return out
}

func (m *Manager) ActiveCount() int { return m.world.Pool().ActiveCount() }
func (m *Manager) FreeCount() int   { return m.world.Pool().FreeCount() }

// Constructed is the number of planetoid instances ever built.
func (m *Manager) Constructed() int { return len(m.slots) }

// FlushSignals delivers the lifecycle signals triggered this tick.
func (m *Manager) FlushSignals() {
	m.EnteredPlay.Flush()
	m.LeftPlay.Flush()
}
