package gc

import (
	"unsafe"

	"github.com/mscollect/mscollect/internal/gcerrors"
	"github.com/mscollect/mscollect/internal/gctype"
)

// Alloc allocates a raw, untyped block of n bytes (0 < n <= 2^24-1). The
// returned region contains no managed pointers the mark engine will
// trace; it still participates in reachability as an opaque leaf.
func (c *Collector) Alloc(n uintptr) unsafe.Pointer {
	defer c.enter("Alloc")()

	if n == 0 || n > maxAllocBytes {
		fatalf(gcerrors.InvalidSize(n, maxAllocBytes))
	}

	return objectOf(c.allocBlock(n, gctype.NoType, int(n)))
}

// AllocObject allocates one instance of the given registered type.
func (c *Collector) AllocObject(t gctype.ID) unsafe.Pointer {
	defer c.enter("AllocObject")()

	size := c.typeSize(t)

	return objectOf(c.allocBlock(size, t, 1))
}

// AllocArray allocates count contiguous instances of the given
// registered type (0 < count <= 2^24-1).
func (c *Collector) AllocArray(t gctype.ID, count int) unsafe.Pointer {
	defer c.enter("AllocArray")()

	if count <= 0 || count > maxArrayCount {
		fatalf(gcerrors.InvalidSize(uintptr(count), uintptr(maxArrayCount)))
	}

	size := c.typeSize(t) * uintptr(count)

	return objectOf(c.allocBlock(size, t, count))
}

func (c *Collector) typeSize(t gctype.ID) uintptr {
	return c.types.Lookup(t).Size()
}

// allocBlock implements the allocation-layer contract shared by Alloc,
// AllocObject, and AllocArray: check the collection threshold, obtain a
// zero-filled block (collecting and retrying once on exhaustion), write
// the header, register the address in the Allocation Trie, and update
// the live-count/live-byte statistics.
func (c *Collector) allocBlock(userBytes uintptr, t gctype.ID, count int) *header {
	if !c.bottomSet {
		fatalf(gcerrors.BottomOfStackNotSet())
	}

	c.maybeCollectBeforeAlloc()

	blockSize := headerSize + userBytes

	p, ok := c.pool.Alloc(blockSize)
	if !ok {
		c.collectLocked()

		p, ok = c.pool.Alloc(blockSize)
		if !ok {
			fatalf(gcerrors.Exhausted(blockSize))
		}
	}

	h := (*header)(p)
	h.magic = headerMagic
	h.count = count
	h.typeID = t

	c.allocations.Insert(uint64(addrOf(h)) >> 3)

	c.liveCount++
	c.liveBytes += userBytes
	c.totalAllocs++

	return h
}

// maybeCollectBeforeAlloc runs the collection-trigger check specified
// for every allocation: if either running total has reached its
// threshold, collect now and raise both thresholds to twice the
// post-collection totals (never below the configured minimums).
func (c *Collector) maybeCollectBeforeAlloc() {
	if c.liveCount < c.countThreshold && c.liveBytes < c.sizeThreshold {
		return
	}

	c.collectLocked()

	c.countThreshold = max(2*c.liveCount, CountMin)
	c.sizeThreshold = max(2*c.liveBytes, SizeMin)
}
