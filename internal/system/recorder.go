package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/lasercut/planetoids/internal/core/system"
	"github.com/lasercut/planetoids/internal/planetoid"
	"github.com/lasercut/planetoids/internal/record"
)

// RecordSystem appends a frame to the recording every `every` ticks. The
// first write error is logged and recording stops. Phase 5 (Output).
type RecordSystem struct {
	rec       *record.Recorder
	mgr       *planetoid.Manager
	every     int
	log       *zap.Logger
	tickCount uint64
	failed    bool
}

func NewRecordSystem(rec *record.Recorder, mgr *planetoid.Manager, every int, log *zap.Logger) *RecordSystem {
	if every <= 0 {
		every = 1
	}
	return &RecordSystem{rec: rec, mgr: mgr, every: every, log: log}
}

func (s *RecordSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RecordSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.failed || s.tickCount%uint64(s.every) != 0 {
		return
	}
	if err := s.rec.Write(record.Snapshot(s.tickCount, s.mgr)); err != nil {
		s.failed = true
		s.log.Error("recording stopped", zap.Error(err))
	}
}
