package event

// Signal is a zero-argument, multi-listener notification whose triggers are
// coalesced until Flush. Any number of Trigger calls within one tick produce
// exactly one delivery when the end-of-tick system flushes it; the pending
// flag is cleared before listeners run, so a trigger from inside a listener
// is delivered on the next flush.
type Signal struct {
	name      string
	listeners []func()
	pending   bool
	delivered int
}

func NewSignal(name string) *Signal {
	return &Signal{name: name}
}

func (s *Signal) Name() string { return s.name }

// AddListener adds a callback invoked on each delivery. Nil is ignored.
func (s *Signal) AddListener(fn func()) {
	if fn == nil {
		return
	}
	s.listeners = append(s.listeners, fn)
}

func (s *Signal) ListenerCount() int { return len(s.listeners) }

// Trigger marks the signal dirty for this tick.
func (s *Signal) Trigger() {
	s.pending = true
}

func (s *Signal) Pending() bool { return s.pending }

// Flush delivers the signal once if it was triggered since the last flush.
// Returns whether a delivery happened.
func (s *Signal) Flush() bool {
	if !s.pending {
		return false
	}
	s.pending = false
	s.delivered++
	for _, fn := range s.listeners {
		fn()
	}
	return true
}

// Delivered counts deliveries since creation.
func (s *Signal) Delivered() int { return s.delivered }
