package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/lasercut/planetoids/internal/core/event"
	coresys "github.com/lasercut/planetoids/internal/core/system"
	"github.com/lasercut/planetoids/internal/planetoid"
)

// Stats are event totals for one reporting window.
type Stats struct {
	Slices     int
	Rejections int
	Fades      int
	Recycles   int
	AreaCut    float64
}

// StatsSystem tallies slice and lifecycle events from the bus and logs a
// summary every `every` ticks. Phase 5 (Output).
type StatsSystem struct {
	mgr       *planetoid.Manager
	every     int
	log       *zap.Logger
	window    Stats
	total     Stats
	tickCount int
}

func NewStatsSystem(bus *event.Bus, mgr *planetoid.Manager, every int, log *zap.Logger) *StatsSystem {
	s := &StatsSystem{mgr: mgr, every: every, log: log}
	event.Subscribe(bus, func(ev event.Sliced) {
		s.window.Slices++
		s.window.AreaCut += ev.AreaA + ev.AreaB
	})
	event.Subscribe(bus, func(event.SliceRejected) { s.window.Rejections++ })
	event.Subscribe(bus, func(event.FadeStarted) { s.window.Fades++ })
	event.Subscribe(bus, func(event.Recycled) { s.window.Recycles++ })
	return s
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *StatsSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.every <= 0 || s.tickCount%s.every != 0 {
		return
	}
	s.Report()
}

// Report logs the current window, folds it into the totals and resets it.
func (s *StatsSystem) Report() {
	w := s.window
	s.log.Info("arena stats",
		zap.Int("active", s.mgr.ActiveCount()),
		zap.Int("free", s.mgr.FreeCount()),
		zap.Int("slices", w.Slices),
		zap.Int("rejected", w.Rejections),
		zap.Int("fades", w.Fades),
		zap.Int("recycled", w.Recycles),
		zap.Float64("area_cut", w.AreaCut),
	)
	s.total.Slices += w.Slices
	s.total.Rejections += w.Rejections
	s.total.Fades += w.Fades
	s.total.Recycles += w.Recycles
	s.total.AreaCut += w.AreaCut
	s.window = Stats{}
}

// Window returns the totals since the last report.
func (s *StatsSystem) Window() Stats { return s.window }

// Total returns the totals of every completed report.
func (s *StatsSystem) Total() Stats { return s.total }
