//go:build !amd64 && !arm64

package gcarch

import (
	"log"
	"sync"
	"unsafe"
)

// NumCalleeSaved is 0 on architectures without a dedicated capture stub:
// SaveCalleeSaved reports no registers here.
const NumCalleeSaved = 0

var warnOnce sync.Once

// FrameTop returns the address of a local variable in the caller's
// frame. It is a less precise stand-in for the assembly-captured stack
// pointer used on amd64/arm64, but still gives the mark engine a valid
// address inside the live stack to scan from.
func FrameTop() uintptr {
	warn()

	var x int

	return uintptr(unsafe.Pointer(&x))
}

// SaveCalleeSaved reports no registers on this architecture: anything a
// compiler spilled into a callee-saved register is invisible to the mark
// engine here. Scanning degrades to the stack alone.
func SaveCalleeSaved() []uintptr {
	warn()

	return nil
}

func warn() {
	warnOnce.Do(func() {
		log.Printf("gcarch: no register-capture support on this architecture; conservative scans cover the stack only")
	})
}
