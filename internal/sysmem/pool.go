package sysmem

import (
	"sync"
	"unsafe"
)

// Pool recycles same-size blocks freed by the collector's sweep phase so
// that a steady-state allocation/collection cycle does not pay an
// mmap/munmap syscall per object. It is a pure cache: Alloc returns a
// recycled block when one is available and otherwise maps a fresh one
// (reporting ok=false if that fails), and Free always hands the block to
// its size class for reuse. Free never releases memory to the system
// allocator; only Drain does.
//
// Pool carries its own mutex. The collector above it does not — the
// collector itself is deliberately single-threaded (see
// internal/gc's package doc) — but Pool's contract never promised
// single-goroutine use, and guarding a handful of sync.Pool.Get/Put calls
// costs nothing on the hot single-threaded path either.
type Pool struct {
	classes map[uintptr]*sync.Pool
	mu      sync.Mutex
}

// NewPool creates an empty recycling pool.
func NewPool() *Pool {
	return &Pool{classes: make(map[uintptr]*sync.Pool)}
}

func (p *Pool) classFor(size uintptr) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.classes[size]
	if !ok {
		c = &sync.Pool{}
		p.classes[size] = c
	}

	return c
}

// Alloc returns a zero-filled block of exactly size bytes, reusing a
// previously freed block of the same size if one is available.
func (p *Pool) Alloc(size uintptr) (unsafe.Pointer, bool) {
	c := p.classFor(size)

	if v := c.Get(); v != nil {
		ptr := v.(unsafe.Pointer)
		zero(ptr, size)

		return ptr, true
	}

	return Alloc(size)
}

// Free returns a block of the given size to the pool for reuse.
func (p *Pool) Free(ptr unsafe.Pointer, size uintptr) {
	if ptr == nil {
		return
	}

	p.classFor(size).Put(ptr)
}

// Drain releases every pooled block of the given size back to the system
// allocator, emptying that size class.
func (p *Pool) Drain(size uintptr) {
	c := p.classFor(size)
	for {
		v := c.Get()
		if v == nil {
			return
		}

		Free(v.(unsafe.Pointer), size)
	}
}

func zero(p unsafe.Pointer, size uintptr) {
	b := unsafe.Slice((*byte)(p), int(size))
	for i := range b {
		b[i] = 0
	}
}
