package trie

import (
	"unsafe"

	"github.com/mscollect/mscollect/internal/sysmem"
)

// sysmemSource is the default NodeSource: every node comes straight from
// internal/sysmem with no recycling and no collector awareness. It is
// enough to use a Trie standalone (as in tests); internal/gc supplies a
// richer NodeSource that pools freed nodes and escalates exhaustion into
// a collection-and-retry before giving up.
type sysmemSource struct{}

// DefaultSource is a NodeSource that maps node memory directly from the
// operating system via internal/sysmem and aborts the process if the
// system is out of memory. It never pools or recycles freed nodes.
var DefaultSource NodeSource = sysmemSource{}

func (sysmemSource) AllocNode() unsafe.Pointer {
	p, ok := sysmem.Alloc(NodeSize)
	if !ok {
		panic("trie: system out of memory allocating a node")
	}

	return p
}

func (sysmemSource) FreeNode(p unsafe.Pointer) {
	sysmem.Free(p, NodeSize)
}
