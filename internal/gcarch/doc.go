// Package gcarch captures the two pieces of machine state a conservative
// collector needs that Go's type system has no vocabulary for: the
// address bounding the top of the currently active stack frame, and the
// contents of the callee-saved registers a spilled pointer might still be
// sitting in when a collection runs.
//
// Both are obtained through tiny architecture-specific assembly stubs.
// A native implementation would reach for __builtin_frame_address for
// the frame bound and a setjmp buffer (plus an explicit separate read
// of rbp, since setjmp mangles it on some platforms) to capture
// registers; Go has neither, so the closest portable equivalent is a
// pair of hand-written Plan 9 assembly functions, one per supported
// GOARCH.
//
// amd64 and arm64 are fully supported. Other architectures get a
// degraded fallback: FrameTop still returns a usable (if less precise)
// stack address, but SaveCalleeSaved reports no registers, and a single
// warning is logged rather than refusing to build — a library that
// refuses to compile outside its two best-supported architectures is a
// worse failure mode than one that scans slightly less of the stack.
package gcarch
