//go:build unix

package sysmem

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// rawAlloc maps a private, anonymous region directly from the kernel. mmap
// always returns page-aligned memory (far stricter than the 16-byte
// alignment sysmem promises) and the kernel zero-fills new anonymous
// pages, so both contract requirements are free consequences of the
// syscall rather than anything sysmem has to arrange itself.
func rawAlloc(n uintptr) (unsafe.Pointer, bool) {
	size := int(roundUp(n))

	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, false
	}

	return unsafe.Pointer(&b[0]), true
}

func rawFree(p unsafe.Pointer, n uintptr) {
	size := int(roundUp(n))
	b := unsafe.Slice((*byte)(p), size)

	_ = unix.Munmap(b)
}
