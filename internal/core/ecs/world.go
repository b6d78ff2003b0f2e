package ecs

// World is the top-level container for pooled entities. It owns the entity
// pool and a deferred destruction queue flushed by CleanupSystem each tick.
type World struct {
	pool         *EntityPool
	destroyQueue []EntityID
	release      func(EntityID)
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool { return w.pool }

// OnRelease installs the hook that tears an entity down when its queued
// destruction is flushed. The hook owns the call to Pool().Destroy.
// Without a hook the slot is freed directly.
func (w *World) OnRelease(fn func(EntityID)) {
	w.release = fn
}

func (w *World) CreateEntity() (EntityID, bool) {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns the number of queued destructions.
func (w *World) Pending() int { return len(w.destroyQueue) }

// FlushDestroyQueue releases every queued entity that is still alive.
// Entries whose generation moved on (already recycled some other way) are
// dropped silently. Returns the number released.
func (w *World) FlushDestroyQueue() int {
	released := 0
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		if w.release != nil {
			w.release(id)
		} else {
			w.pool.Destroy(id)
		}
		released++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return released
}
