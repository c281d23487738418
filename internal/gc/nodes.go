package gc

import (
	"unsafe"

	"github.com/mscollect/mscollect/internal/gcerrors"
	"github.com/mscollect/mscollect/internal/sysmem"
	"github.com/mscollect/mscollect/internal/trie"
)

// collectorNodeSource is the trie.NodeSource the Allocation Trie and
// Root Trie use for their own internal nodes. It escalates exhaustion
// the way node allocation is specified to: trigger a collection, retry
// once, then abort — the same retry shape alloc/allocObject/allocArray
// apply to user blocks, just for trie bookkeeping memory instead.
//
// collector is the back-reference to the owning Collector. New sets it
// before creating the tries, so every node a trie allocates can escalate
// into that Collector's collection.
type collectorNodeSource struct {
	pool      *sysmem.Pool
	collector *Collector
}

func (s *collectorNodeSource) AllocNode() unsafe.Pointer {
	if p, ok := s.pool.Alloc(trie.NodeSize); ok {
		return p
	}

	// collectLocked, not Collect: node allocation happens while a public
	// API call (Alloc, AddRoot, ...) already holds the reentrancy guard,
	// so escalating through the guarded entry point would misreport this
	// as a concurrent/reentrant call rather than the expected internal
	// exhaustion recovery.
	s.collector.collectLocked()

	if p, ok := s.pool.Alloc(trie.NodeSize); ok {
		return p
	}

	fatalf(gcerrors.Exhausted(trie.NodeSize))

	return nil
}

func (s *collectorNodeSource) FreeNode(p unsafe.Pointer) {
	s.pool.Free(p, trie.NodeSize)
}
