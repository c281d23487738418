package trie

import "unsafe"

// ptrFromUint and uintFromPtr convert between a *node and the uint64
// representation stored in a trie slot. Node memory always comes from a
// NodeSource (ultimately internal/sysmem, outside the Go heap), never
// from a plain Go allocation: a *node reachable only through an
// integer-tagged slot value carries no type information the host Go GC's
// pointer tracing can follow, so a node living on the Go heap could be
// collected out from under the trie the moment nothing else references
// it by a typed pointer. Round-tripping the address through uintptr is
// safe precisely because sysmem-backed memory is never subject to the
// host GC or to a moving allocator in the first place.
func ptrFromUint(x uint64) unsafe.Pointer {
	return unsafe.Pointer(uintptr(x))
}

func uintFromPtr(n *node) uint64 {
	return uint64(uintptr(unsafe.Pointer(n)))
}
