package gc

import (
	"unsafe"

	"github.com/mscollect/mscollect/internal/gctype"
)

// headerMagic tags every live header so a candidate address that passes
// the alignment and trie-membership checks can be double-checked before
// the mark engine trusts it. A mismatch is always fatal; there is no
// recoverable path from a clobbered header.
const headerMagic uint32 = 0x47434831 // "GCH1"

// header is the metadata block immediately preceding every live user
// region. It mirrors the original Allocation struct field for field:
// marked/count/i/j/parent/type, plus the magic canary above.
type header struct {
	marked bool
	magic  uint32
	count  int // array element count (typed) or byte size (raw)
	i, j   int // DSW resumable cursor: element index, pointer-slot index
	parent *header
	typeID gctype.ID
}

// headerSize is the byte offset from a block's start to its user region.
var headerSize = unsafe.Sizeof(header{})

// isAligned reports whether addr satisfies the 16-byte header alignment
// invariant sysmem guarantees for every block it hands out.
func isAligned(addr uintptr) bool {
	return addr != 0 && addr&15 == 0
}

// headerOf returns the header immediately preceding the user region at
// obj.
func headerOf(obj unsafe.Pointer) *header {
	return (*header)(unsafe.Pointer(uintptr(obj) - headerSize))
}

// objectOf returns the address of h's user region.
func objectOf(h *header) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(h)) + headerSize)
}

// addrOf returns h's own address, the value stored in the Allocation
// Trie and Root Trie.
func addrOf(h *header) uintptr {
	return uintptr(unsafe.Pointer(h))
}

// headerAt reinterprets a raw address as a *header without any
// validation; callers must have already confirmed alignment and trie
// membership.
func headerAt(addr uintptr) *header {
	return (*header)(unsafe.Pointer(addr))
}

// checkMagic panics with a CorruptHeader error if h's canary does not
// match, which indicates heap corruption rather than caller misuse.
func checkMagic(h *header) {
	if h.magic != headerMagic {
		panic(corruptHeaderError(h))
	}
}
