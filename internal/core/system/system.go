package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: laser shots
	PhasePreUpdate               // 1: dispatch last tick's events
	PhaseUpdate                  // 2: physics step, spawning
	PhasePostUpdate              // 3: fade decay
	PhaseCleanup                 // 4: recycle queued planetoids
	PhaseOutput                  // 5: flush lifecycle signals, stats, recording
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	case PhaseCleanup:
		return "cleanup"
	case PhaseOutput:
		return "output"
	}
	return "unknown"
}

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
