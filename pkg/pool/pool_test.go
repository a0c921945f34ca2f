package pool

import "testing"

type record struct {
	id int
}

func TestAllocGet(t *testing.T) {
	p := New[record](4)

	h, r := p.Alloc()
	r.id = 42

	got := p.Get(h)
	if got == nil {
		t.Fatal("Get returned nil for live handle")
	}
	if got.id != 42 {
		t.Errorf("expected id 42, got %d", got.id)
	}
	if p.Live() != 1 {
		t.Errorf("expected 1 live object, got %d", p.Live())
	}
}

func TestFreeInvalidatesHandle(t *testing.T) {
	p := New[record](4)

	h, _ := p.Alloc()
	if !p.Free(h) {
		t.Fatal("Free returned false for live handle")
	}
	if p.Get(h) != nil {
		t.Error("Get should return nil after Free")
	}
	if p.Live() != 0 {
		t.Errorf("expected 0 live objects, got %d", p.Live())
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	p := New[record](4)

	h1, r1 := p.Alloc()
	r1.id = 1
	p.Free(h1)

	// The freed slot is recycled for the next allocation
	h2, r2 := p.Alloc()
	r2.id = 2

	if p.Get(h1) != nil {
		t.Error("stale handle should not resolve to the recycled object")
	}
	if got := p.Get(h2); got == nil || got.id != 2 {
		t.Errorf("new handle should resolve: got %v", got)
	}
}

func TestDoubleFree(t *testing.T) {
	p := New[record](4)

	h, _ := p.Alloc()
	if !p.Free(h) {
		t.Fatal("first Free should succeed")
	}
	if p.Free(h) {
		t.Error("second Free should be a no-op and return false")
	}
	if p.Live() != 0 {
		t.Errorf("expected 0 live objects, got %d", p.Live())
	}
}

func TestAllocResetsRecycledValue(t *testing.T) {
	p := New[record](4)

	h1, r1 := p.Alloc()
	r1.id = 99
	p.Free(h1)

	_, r2 := p.Alloc()
	if r2.id != 0 {
		t.Errorf("recycled value should be zeroed, got id %d", r2.id)
	}
}

func TestGrowsBeyondCapacity(t *testing.T) {
	p := New[record](2)

	handles := make([]Handle, 8)
	for i := range handles {
		h, r := p.Alloc()
		r.id = i
		handles[i] = h
	}

	if p.Live() != 8 {
		t.Errorf("expected 8 live objects, got %d", p.Live())
	}
	for i, h := range handles {
		got := p.Get(h)
		if got == nil || got.id != i {
			t.Errorf("handle %d should resolve to id %d, got %v", i, i, got)
		}
	}
}

func TestAllocPointersStableAcrossGrowth(t *testing.T) {
	p := New[record](2)

	h0, r0 := p.Alloc()
	for i := 0; i < 7; i++ {
		p.Alloc()
	}

	// Writes through the original pointer must stay visible via the handle
	// even after the arena grew past its initial capacity.
	r0.id = 42
	got := p.Get(h0)
	if got == nil {
		t.Fatal("handle stopped resolving after growth")
	}
	if got != r0 {
		t.Error("Get should return the same address Alloc handed out")
	}
	if got.id != 42 {
		t.Errorf("expected id 42 through the handle, got %d", got.id)
	}
}

func TestNilHandle(t *testing.T) {
	p := New[record](4)
	p.Alloc()

	if p.Get(Nil) != nil {
		t.Error("nil handle should not resolve")
	}
	if p.Free(Nil) {
		t.Error("freeing nil handle should return false")
	}
}
