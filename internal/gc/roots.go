package gc

import (
	"unsafe"

	"github.com/mscollect/mscollect/internal/gcerrors"
)

// AddRoot registers the allocation containing p as a root: it survives
// every collection regardless of stack or register reachability until
// explicitly removed. p must have been returned by one of this
// Collector's allocators and must still be a live allocation.
func (c *Collector) AddRoot(p unsafe.Pointer) {
	defer c.enter("AddRoot")()

	if p == nil {
		fatalf(gcerrors.NullPointer("AddRoot"))
	}

	h := headerOf(p)
	addr := addrOf(h)

	if !isAligned(addr) || !c.allocations.Contains(uint64(addr)>>3) {
		fatalf(gcerrors.NotAnAllocation(addr))
	}

	checkMagic(h)
	c.roots.Insert(uint64(addr) >> 3)
}

// RemoveRoot removes p from the root registry, if present. Removing an
// address that was never added, or that no longer names a live
// allocation, is a silent no-op.
func (c *Collector) RemoveRoot(p unsafe.Pointer) {
	defer c.enter("RemoveRoot")()

	if p == nil {
		return
	}

	addr := addrOf(headerOf(p))
	if isAligned(addr) {
		c.roots.Remove(uint64(addr) >> 3)
	}
}

// ContainsRoot reports whether p is currently registered as a root.
func (c *Collector) ContainsRoot(p unsafe.Pointer) bool {
	defer c.enter("ContainsRoot")()

	if p == nil {
		return false
	}

	addr := addrOf(headerOf(p))
	if !isAligned(addr) {
		return false
	}

	return c.roots.Contains(uint64(addr) >> 3)
}
