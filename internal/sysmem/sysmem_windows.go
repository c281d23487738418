//go:build windows

package sysmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// rawAlloc reserves and commits a region with VirtualAlloc. Like mmap,
// VirtualAlloc returns page-aligned memory (a multiple of the system
// allocation granularity) and zero-fills committed pages, satisfying
// sysmem's alignment and zero-initialization contract without extra work.
func rawAlloc(n uintptr) (unsafe.Pointer, bool) {
	size := uintptr(roundUp(n))

	addr, err := windows.VirtualAlloc(0, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, false
	}

	return unsafe.Pointer(addr), true
}

func rawFree(p unsafe.Pointer, _ uintptr) {
	_ = windows.VirtualFree(uintptr(p), 0, windows.MEM_RELEASE)
}
