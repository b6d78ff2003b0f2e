package ecs

import "testing"

func TestEntityIDPacking(t *testing.T) {
	id := NewEntityID(42, 7)
	if id.Index() != 42 {
		t.Errorf("Expected index 42, got %d", id.Index())
	}
	if id.Generation() != 7 {
		t.Errorf("Expected generation 7, got %d", id.Generation())
	}
}

func TestCreateNeverReturnsZero(t *testing.T) {
	p := NewEntityPool()
	id, reused := p.Create()
	if id.IsZero() {
		t.Error("First ID should not be the zero ID")
	}
	if reused {
		t.Error("First slot cannot be reused")
	}
}

func TestDestroyReusesLIFO(t *testing.T) {
	p := NewEntityPool()
	a, _ := p.Create()
	b, _ := p.Create()
	c, _ := p.Create()

	p.Destroy(a)
	p.Destroy(c)

	first, reused := p.Create()
	if !reused || first.Index() != c.Index() {
		t.Errorf("Expected slot %d reused first, got %d (reused=%v)", c.Index(), first.Index(), reused)
	}
	second, _ := p.Create()
	if second.Index() != a.Index() {
		t.Errorf("Expected slot %d reused second, got %d", a.Index(), second.Index())
	}
	if !p.Alive(b) {
		t.Error("Untouched entity should stay alive")
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	p := NewEntityPool()
	id, _ := p.Create()

	if !p.Destroy(id) {
		t.Fatal("First destroy should report a change")
	}
	if p.Destroy(id) {
		t.Error("Second destroy should be a no-op")
	}
	if p.FreeCount() != 1 {
		t.Errorf("Expected 1 free slot, got %d", p.FreeCount())
	}
}

func TestStaleIDAfterReuse(t *testing.T) {
	p := NewEntityPool()
	old, _ := p.Create()
	p.Destroy(old)
	fresh, _ := p.Create()

	if old.Index() != fresh.Index() {
		t.Fatal("Expected slot reuse")
	}
	if p.Alive(old) {
		t.Error("Stale ID should not be alive")
	}
	if p.Destroy(old) {
		t.Error("Destroying a stale ID must not free the new occupant")
	}
	if !p.Alive(fresh) {
		t.Error("New occupant should stay alive")
	}
}

func TestPoolClosure(t *testing.T) {
	p := NewEntityPool()
	var ids []EntityID
	for i := 0; i < 10; i++ {
		id, _ := p.Create()
		ids = append(ids, id)
	}
	for _, id := range ids[:4] {
		p.Destroy(id)
	}
	p.Create()

	if p.ActiveCount()+p.FreeCount() != p.Capacity() {
		t.Errorf("active %d + free %d != capacity %d", p.ActiveCount(), p.FreeCount(), p.Capacity())
	}

	seen := 0
	p.Each(func(id EntityID) {
		if !p.Alive(id) {
			t.Errorf("Each yielded dead ID %d", id)
		}
		seen++
	})
	if seen != p.ActiveCount() {
		t.Errorf("Each visited %d, active count %d", seen, p.ActiveCount())
	}
}

func TestWorldFlushSkipsStale(t *testing.T) {
	w := NewWorld()
	released := 0
	w.OnRelease(func(id EntityID) {
		released++
		w.Pool().Destroy(id)
	})

	a, _ := w.CreateEntity()
	b, _ := w.CreateEntity()
	w.MarkForDestruction(a)
	w.MarkForDestruction(b)
	w.MarkForDestruction(a)
	w.Pool().Destroy(b)

	if n := w.FlushDestroyQueue(); n != 1 {
		t.Errorf("Expected 1 release, got %d", n)
	}
	if released != 1 {
		t.Errorf("Release hook ran %d times", released)
	}
	if w.Pending() != 0 {
		t.Error("Queue should be empty after flush")
	}
}

func TestCurrentTracksSlotOccupant(t *testing.T) {
	p := NewEntityPool()
	a, _ := p.Create()

	if got, ok := p.Current(a.Index()); !ok || got != a {
		t.Fatalf("Expected %v in slot %d, got %v (ok=%v)", a, a.Index(), got, ok)
	}

	p.Destroy(a)
	if _, ok := p.Current(a.Index()); ok {
		t.Error("Destroyed slot should have no current ID")
	}

	b, _ := p.Create()
	got, ok := p.Current(a.Index())
	if !ok || got != b || got == a {
		t.Errorf("Expected the reused ID %v, got %v (ok=%v)", b, got, ok)
	}
	if _, ok := p.Current(99); ok {
		t.Error("Slot never created should have no current ID")
	}
}
