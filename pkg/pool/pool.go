// Package pool provides a generic object arena with free-list reuse and
// generation-counted handles.
package pool

// Handle identifies a live object in a Pool. A handle becomes stale when
// its object is freed; stale handles never resolve to the recycled object.
type Handle struct {
	index uint32
	gen   uint32
}

// Nil is the zero handle; it never resolves.
var Nil = Handle{}

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Pool is an arena of T values with free-list reuse. Freed slots keep their
// storage and are handed out again by Alloc; the generation counter on each
// slot detects handles that outlived their object.
//
// Storage is paged: growth appends a new fixed-size page and never moves
// existing slots, so pointers returned by Alloc stay valid until Free.
//
// A Pool is not safe for concurrent use.
type Pool[T any] struct {
	pages    [][]slot[T]
	pageSize int
	free     []uint32
	live     int
	total    int
}

// New creates a pool pre-sized to hold capacity objects without growing.
// Capacity is also the page size used for growth.
func New[T any](capacity int) *Pool[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool[T]{
		pages:    [][]slot[T]{make([]slot[T], 0, capacity)},
		pageSize: capacity,
		free:     make([]uint32, 0, capacity),
	}
}

func (p *Pool[T]) slotAt(idx uint32) *slot[T] {
	return &p.pages[int(idx)/p.pageSize][int(idx)%p.pageSize]
}

// Alloc takes a free slot (or grows the arena by one page) and returns its
// handle and a pointer to the zeroed value. The pointer stays valid until
// Free.
func (p *Pool[T]) Alloc() (Handle, *T) {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
		var zero T
		p.slotAt(idx).value = zero
	} else {
		last := len(p.pages) - 1
		if len(p.pages[last]) == p.pageSize {
			p.pages = append(p.pages, make([]slot[T], 0, p.pageSize))
			last++
		}
		p.pages[last] = append(p.pages[last], slot[T]{gen: 1})
		idx = uint32(p.total)
		p.total++
	}
	s := p.slotAt(idx)
	s.live = true
	p.live++
	return Handle{index: idx, gen: s.gen}, &s.value
}

// Get resolves a handle to its object, or nil if the handle is stale, freed
// or zero.
func (p *Pool[T]) Get(h Handle) *T {
	if int(h.index) >= p.total {
		return nil
	}
	s := p.slotAt(h.index)
	if !s.live || s.gen != h.gen {
		return nil
	}
	return &s.value
}

// Free returns the object to the pool and invalidates the handle. It
// reports whether the handle was live; freeing a stale or already-freed
// handle is a no-op.
func (p *Pool[T]) Free(h Handle) bool {
	if int(h.index) >= p.total {
		return false
	}
	s := p.slotAt(h.index)
	if !s.live || s.gen != h.gen {
		return false
	}
	s.live = false
	s.gen++
	p.free = append(p.free, h.index)
	p.live--
	return true
}

// Live returns the number of currently allocated objects.
func (p *Pool[T]) Live() int {
	return p.live
}
