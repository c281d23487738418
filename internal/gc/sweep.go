package gc

import (
	"unsafe"

	"github.com/mscollect/mscollect/internal/gctype"
)

// sweep walks the Allocation Trie, keeping every marked header (clearing
// its mark for the next cycle) and releasing every unmarked header's
// block back to the pool. Node collapse inside the trie happens
// automatically as a side effect of Visit. Returns the count and byte
// total of everything freed, for the caller to subtract from the
// running live-count/live-byte statistics.
func (c *Collector) sweep() (freedCount, freedBytes uintptr) {
	c.allocations.Visit(func(x uint64) bool {
		addr := uintptr(x) << 3
		h := headerAt(addr)
		checkMagic(h)

		if h.marked {
			h.marked = false
			return true // keep
		}

		userBytes := c.userBytesOf(h)
		freedCount++
		freedBytes += userBytes

		c.pool.Free(unsafe.Pointer(h), headerSize+userBytes)

		return false // drop from the trie
	})

	return freedCount, freedBytes
}

// userBytesOf returns the size, in bytes, of h's user region: count
// directly for a raw allocation, or count*typeSize for a typed one.
func (c *Collector) userBytesOf(h *header) uintptr {
	if h.typeID == gctype.NoType {
		return uintptr(h.count)
	}

	return uintptr(h.count) * c.types.Lookup(h.typeID).Size()
}
