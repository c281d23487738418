package gc

import (
	"io"
	"sync"
	"unsafe"

	"github.com/mscollect/mscollect/internal/gctype"
)

var (
	defaultOnce sync.Once
	defaultInst *Collector
)

// Default returns the process-wide collector most client code actually
// wants: a single shared heap, constructed lazily on first use. Tests
// and programs that want more than one independent heap should call New
// directly instead.
func Default() *Collector {
	defaultOnce.Do(func() { defaultInst = New() })

	return defaultInst
}

// The package-level functions below are thin shims over Default(), one
// per external operation, mirroring the client-facing surface of the
// original C implementation's global gc_* functions.

// SetBottomOfStack registers the bottom of stack on the default
// collector. See Collector.SetBottomOfStack.
func SetBottomOfStack(addr uintptr) { Default().SetBottomOfStack(addr) }

// SetBottomOfStackHere captures the caller's own frame address as the
// bottom of stack on the default collector.
func SetBottomOfStackHere() { Default().SetBottomOfStackHere() }

// NewType registers a new type on the default collector.
func NewType(size uintptr, nPtrs int) gctype.ID { return Default().NewType(size, nPtrs) }

// SetOffset sets a pointer-slot offset on the default collector.
func SetOffset(t gctype.ID, i int, offset uintptr) { Default().SetOffset(t, i, offset) }

// Alloc allocates a raw block on the default collector.
func Alloc(n uintptr) unsafe.Pointer { return Default().Alloc(n) }

// AllocObject allocates one typed instance on the default collector.
func AllocObject(t gctype.ID) unsafe.Pointer { return Default().AllocObject(t) }

// AllocArray allocates a typed array on the default collector.
func AllocArray(t gctype.ID, count int) unsafe.Pointer { return Default().AllocArray(t, count) }

// AddRoot registers p as a root on the default collector.
func AddRoot(p unsafe.Pointer) { Default().AddRoot(p) }

// RemoveRoot removes p from the default collector's root registry.
func RemoveRoot(p unsafe.Pointer) { Default().RemoveRoot(p) }

// ContainsRoot reports whether p is a root on the default collector.
func ContainsRoot(p unsafe.Pointer) bool { return Default().ContainsRoot(p) }

// Collect runs a full collection on the default collector.
func Collect() { Default().Collect() }

// IsEmpty reports whether the default collector holds zero live
// allocations.
func IsEmpty() bool { return Default().IsEmpty() }

// PrintStats writes the default collector's stats to w.
func PrintStats(w io.Writer) { Default().PrintStats(w) }
