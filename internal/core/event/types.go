package event

import "github.com/lasercut/planetoids/internal/core/ecs"

// Sliced is emitted when a cut splits a planetoid. Source keeps its slot,
// Fragment is the planetoid taken from the pool.
type Sliced struct {
	Source   ecs.EntityID
	Fragment ecs.EntityID
	AreaA    float64
	AreaB    float64
}

// SliceRejected is emitted when a ray reached a planetoid but no cut was made.
type SliceRejected struct {
	Target ecs.EntityID
	Reason string
}

// FadeStarted is emitted when a planetoid drops to the death area.
type FadeStarted struct {
	ID   ecs.EntityID
	Area float64
}

// Recycled is emitted when a planetoid returns to the free list.
type Recycled struct {
	ID ecs.EntityID
}
