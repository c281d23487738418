package gc

import (
	"unsafe"

	"github.com/mscollect/mscollect/internal/gcarch"
	"github.com/mscollect/mscollect/internal/gcerrors"
	"github.com/mscollect/mscollect/internal/gctype"
)

// SetBottomOfStack registers the highest address the conservative stack
// scan reads up to. It must be called exactly once, before the first
// allocation, typically with the frame address of the program's entry
// point. addr must be 8-byte aligned.
func (c *Collector) SetBottomOfStack(addr uintptr) {
	defer c.enter("SetBottomOfStack")()

	c.setBottomOfStack(addr)
}

// SetBottomOfStackHere is a convenience wrapper around SetBottomOfStack
// that captures the caller's own frame address via internal/gcarch, so a
// typical program entry point need not touch unsafe directly.
func (c *Collector) SetBottomOfStackHere() {
	defer c.enter("SetBottomOfStackHere")()

	c.setBottomOfStack(gcarch.FrameTop())
}

func (c *Collector) setBottomOfStack(addr uintptr) {
	if addr == 0 || addr&7 != 0 {
		fatalf(gcerrors.Misaligned("bottom-of-stack", addr))
	}

	c.bottom = addr
	c.bottomSet = true
}

// Collect runs one full mark-sweep cycle: conservative scan of the
// machine stack and callee-saved registers, precise scan of the root
// registry, then sweep.
func (c *Collector) Collect() {
	defer c.enter("Collect")()

	c.collectLocked()
}

// collectLocked performs a collection without taking the reentrancy
// guard itself; callers already hold it (either a public Collect, or an
// allocator escalating after exhaustion).
func (c *Collector) collectLocked() {
	if !c.bottomSet {
		fatalf(gcerrors.BottomOfStackNotSet())
	}

	c.markStack()
	c.markRoots()

	freedCount, freedBytes := c.sweep()
	c.liveCount -= freedCount
	c.liveBytes -= freedBytes
	c.totalCollections++

	if c.verbose {
		c.logger.Printf("collect: freed=%d freed_bytes=%d live=%d live_bytes=%d",
			freedCount, freedBytes, c.liveCount, c.liveBytes)
	}
}

// markStack conservatively scans the callee-saved registers and every
// word of the machine stack between the register-capture helper's own
// frame (forced below the collector's entry frame so nothing above it is
// missed) and the registered bottom of stack.
func (c *Collector) markStack() {
	top := gcarch.FrameTop()

	if top >= c.bottom {
		fatalf(gcerrors.StackDirection(top, c.bottom))
	}

	for _, w := range gcarch.SaveCalleeSaved() {
		c.scanConservativeWord(w)
	}

	for p := top; p < c.bottom; p += unsafe.Sizeof(uintptr(0)) {
		w := *(*uintptr)(unsafe.Pointer(p))
		c.scanConservativeWord(w)
	}
}

// scanConservativeWord treats w as a candidate user-region pointer: if
// header_of(w) is 16-byte aligned and present in the Allocation Trie, w
// is conservatively assumed to be a live reference and the allocation it
// points at (and everything reachable from it) is marked.
func (c *Collector) scanConservativeWord(w uintptr) {
	if w == 0 {
		return
	}

	candidate := w - headerSize
	if !isAligned(candidate) {
		return
	}

	if !c.allocations.Contains(uint64(candidate) >> 3) {
		return
	}

	h := headerAt(candidate)
	checkMagic(h)
	c.mark(h)
}

// markRoots invokes precise marking on every header registered as a
// root, independent of stack or register reachability.
func (c *Collector) markRoots() {
	c.roots.Visit(func(x uint64) bool {
		c.mark(headerAt(uintptr(x) << 3))
		return true // keep every root
	})
}

// mark marks a and everything reachable from it with an iterative,
// Deutsch-Schorr-Waite-style traversal: no recursion and no auxiliary
// stack. The return path is kept in each header's parent field, not by
// reversing edges, so pointer slots are only read and never rewritten;
// the per-node state is the header's own i/j/parent fields.
//
// Every node's cursor is reset to (0, 0) the moment it is first marked
// in this traversal, not just the entry node a: a node revisited in a
// later collection after surviving a previous one must start its own
// scan from the beginning, since iter_i/iter_j are scratch state valid
// only for the single mark pass that set them.
func (c *Collector) mark(a *header) {
	if a.marked {
		return
	}

	a.marked = true

	if a.typeID == gctype.NoType {
		return
	}

	a.parent = nil
	a.i, a.j = 0, 0

	t := c.types.Lookup(a.typeID)

	for a != nil {
		i, j := a.i, a.j
		offsets := t.Offsets()
		size := t.Size()
		base := uintptr(objectOf(a))

		descended := false

		for i < a.count {
			for j < len(offsets) {
				slot := base + uintptr(i)*size + offsets[j]
				pj := *(*uintptr)(unsafe.Pointer(slot))

				if pj != 0 {
					candidate := pj - headerSize

					if isAligned(candidate) && c.allocations.Contains(uint64(candidate)>>3) {
						aj := headerAt(candidate)
						checkMagic(aj)

						if !aj.marked {
							aj.marked = true

							if aj.typeID != gctype.NoType {
								a.i, a.j = i, j+1
								aj.parent = a
								aj.i, aj.j = 0, 0

								a = aj
								t = c.types.Lookup(a.typeID)
								descended = true
							}
						}
					}
				}

				if descended {
					break
				}

				j++
			}

			if descended {
				break
			}

			j = 0
			i++
		}

		if descended {
			continue
		}

		a = a.parent
		if a != nil {
			t = c.types.Lookup(a.typeID)
		}
	}
}
