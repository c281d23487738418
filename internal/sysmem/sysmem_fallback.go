//go:build !unix && !windows

package sysmem

import (
	"sync"
	"unsafe"
)

// rawAlloc backs sysmem on platforms with neither mmap nor VirtualAlloc.
// It allocates from the host Go heap instead, over-allocating by one
// alignment unit so the returned pointer can be rounded up, and retains
// the original slice in pinned so the host GC cannot reclaim it out from
// under an unsafe.Pointer-only reference — the same retention trick the
// teacher's SystemAllocatorImpl uses around its activeAllocations map.
// Unlike the mmap/VirtualAlloc paths, memory from this fallback remains
// visible to (and scanned by) the host runtime's own collector; that is
// strictly extra, harmless work, not a correctness problem.
var (
	pinnedMu sync.Mutex
	pinned   = map[unsafe.Pointer][]byte{}
)

func rawAlloc(n uintptr) (unsafe.Pointer, bool) {
	size := roundUp(n)

	buf := make([]byte, size+Alignment)
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := roundUp(base)
	off := aligned - base

	p := unsafe.Pointer(&buf[off])

	pinnedMu.Lock()
	pinned[p] = buf
	pinnedMu.Unlock()

	return p, true
}

func rawFree(p unsafe.Pointer, _ uintptr) {
	pinnedMu.Lock()
	delete(pinned, p)
	pinnedMu.Unlock()
}
