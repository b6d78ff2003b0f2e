package ecs

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits. Generation increments on destroy to
// invalidate stale refs held by timers or queued work.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool hands out slot indices over an arena. A slot is either alive
// (in the active set) or on the free list, never both. Freed slots are
// reused last-in first-out.
type EntityPool struct {
	generations []uint32
	alive       []bool
	freeList    []uint32
	nextIndex   uint32
	activeCount int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 256),
		alive:       make([]bool, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

// Create returns a live ID. reused is true when the slot came off the free
// list rather than growing the arena.
func (p *EntityPool) Create() (id EntityID, reused bool) {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		p.alive[idx] = true
		p.activeCount++
		return NewEntityID(idx, p.generations[idx]), true
	}
	idx := p.nextIndex
	p.nextIndex++
	p.generations = append(p.generations, 1) // generation 0 is reserved so the zero ID never names a slot
	p.alive = append(p.alive, true)
	p.activeCount++
	return NewEntityID(idx, 1), false
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.alive[idx] && p.generations[idx] == id.Generation()
}

// Destroy moves a live slot to the free list. Stale or already destroyed IDs
// are ignored; the return value reports whether anything changed.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.generations[idx]++
	p.alive[idx] = false
	p.freeList = append(p.freeList, idx)
	p.activeCount--
	return true
}

// Current returns the live ID occupying slot idx.
func (p *EntityPool) Current(idx uint32) (EntityID, bool) {
	if idx >= p.nextIndex || !p.alive[idx] {
		return 0, false
	}
	return NewEntityID(idx, p.generations[idx]), true
}

// Each calls fn for every live ID in slot order.
func (p *EntityPool) Each(fn func(EntityID)) {
	for idx := uint32(0); idx < p.nextIndex; idx++ {
		if p.alive[idx] {
			fn(NewEntityID(idx, p.generations[idx]))
		}
	}
}

func (p *EntityPool) ActiveCount() int { return p.activeCount }
func (p *EntityPool) FreeCount() int   { return len(p.freeList) }

// Capacity is the number of slots ever created.
func (p *EntityPool) Capacity() int { return int(p.nextIndex) }
