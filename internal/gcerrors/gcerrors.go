// Package gcerrors provides the standardized error type the collector
// raises for the three failure modes its contract distinguishes:
// caller contract violations, allocator exhaustion, and internal
// invariant failures.
package gcerrors

import (
	"fmt"
	"runtime"
)

// Category classifies a collector error.
type Category string

const (
	// CategoryContract marks a caller error: an invalid type id, an
	// offset that doesn't fit its type, a reentrant call into the
	// collector from within a callback. These are always programmer
	// errors, never reported as recoverable values from hot-path
	// allocation calls.
	CategoryContract Category = "CONTRACT"

	// CategoryExhaustion marks a failure to obtain memory from the
	// system allocator even after a collection was triggered and the
	// request retried.
	CategoryExhaustion Category = "EXHAUSTION"

	// CategoryInvariant marks a corrupted internal data structure: a
	// header magic mismatch, a trie tag bit that doesn't parse, a mark
	// cursor that escaped its expected range. These indicate a bug in
	// the collector itself, not caller misuse.
	CategoryInvariant Category = "INVARIANT"
)

// Error is the collector's standard error value.
type Error struct {
	Category Category
	Code     string
	Message  string
	Context  map[string]any
	Caller   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// New creates a collector error, recording the caller one frame above
// whichever constructor below called it.
func New(category Category, code, message string, context map[string]any) *Error {
	pc, _, _, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &Error{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// InvalidType reports an unregistered or out-of-range type id reaching a
// public API call.
func InvalidType(id any) *Error {
	return New(CategoryContract, "INVALID_TYPE",
		fmt.Sprintf("invalid or unregistered type id %v", id),
		map[string]any{"id": id})
}

// OffsetOutOfRange reports SetOffset given an offset that does not leave
// room for a pointer within the type's declared size.
func OffsetOutOfRange(offset, size uintptr) *Error {
	return New(CategoryContract, "OFFSET_OUT_OF_RANGE",
		fmt.Sprintf("offset %d does not fit a pointer in a %d-byte instance", offset, size),
		map[string]any{"offset": offset, "size": size})
}

// Reentrant reports a public API call made while another public call on
// the same collector is still in progress (concurrent use, or a call from
// within the collector's own mark or sweep phase), which the
// single-threaded, no-locks contract forbids.
func Reentrant(operation string) *Error {
	return New(CategoryContract, "REENTRANT_CALL",
		fmt.Sprintf("reentrant call into %s while another collector operation is in progress", operation),
		map[string]any{"operation": operation})
}

// NullPointer reports a required pointer argument that was nil.
func NullPointer(operation string) *Error {
	return New(CategoryContract, "NULL_POINTER",
		fmt.Sprintf("nil pointer passed to %s", operation),
		map[string]any{"operation": operation})
}

// InvalidSize reports a byte size or count outside the bounds the
// operation's contract allows.
func InvalidSize(size, limit uintptr) *Error {
	return New(CategoryContract, "INVALID_SIZE",
		fmt.Sprintf("size %d outside allowed range (limit %d)", size, limit),
		map[string]any{"size": size, "limit": limit})
}

// NotAnAllocation reports a pointer that does not resolve to a header
// present in the Allocation Trie, where the caller's contract requires
// one (e.g. add_root).
func NotAnAllocation(addr uintptr) *Error {
	return New(CategoryContract, "NOT_AN_ALLOCATION",
		fmt.Sprintf("address %#x is not a live allocation", addr),
		map[string]any{"addr": addr})
}

// Misaligned reports an address that fails the alignment contract a
// given role requires (8-byte for stack bounds, 16-byte for headers).
func Misaligned(what string, addr uintptr) *Error {
	return New(CategoryContract, "MISALIGNED_ADDRESS",
		fmt.Sprintf("%s address %#x is not properly aligned", what, addr),
		map[string]any{"what": what, "addr": addr})
}

// BottomOfStackNotSet reports an allocation or collection attempted
// before the client registered the bottom of stack.
func BottomOfStackNotSet() *Error {
	return New(CategoryContract, "BOTTOM_OF_STACK_NOT_SET", "bottom of stack was never registered", nil)
}

// RegistryFull reports new_type called after the type registry reached
// its capacity.
func RegistryFull(max int) *Error {
	return New(CategoryContract, "REGISTRY_FULL",
		fmt.Sprintf("type registry full (max %d types)", max),
		map[string]any{"max": max})
}

// Exhausted reports that the system allocator could not satisfy a
// request even after a triggered collection and retry.
func Exhausted(requested uintptr) *Error {
	return New(CategoryExhaustion, "SYSTEM_OUT_OF_MEMORY",
		fmt.Sprintf("system allocator exhausted requesting %d bytes", requested),
		map[string]any{"requested": requested})
}

// CorruptHeader reports an allocation header whose magic canary does not
// match, indicating heap corruption or a stray write through an untyped
// pointer.
func CorruptHeader(addr uintptr, got, want uint32) *Error {
	return New(CategoryInvariant, "CORRUPT_HEADER",
		fmt.Sprintf("allocation header at %#x has magic %#x, want %#x", addr, got, want),
		map[string]any{"addr": addr, "got": got, "want": want})
}

// StackDirection reports that the captured top-of-stack address was not
// strictly below the registered bottom-of-stack, violating the
// downward-growing-stack assumption the conservative scan depends on.
func StackDirection(top, bottom uintptr) *Error {
	return New(CategoryInvariant, "STACK_DIRECTION",
		fmt.Sprintf("top of stack %#x is not below bottom of stack %#x", top, bottom),
		map[string]any{"top": top, "bottom": bottom})
}

// MarkCursorOutOfRange reports a pointer-reversal cursor (i or j) outside
// the range the mark engine's trie-derived type descriptor allows,
// indicating a bug in the DSW traversal itself.
func MarkCursorOutOfRange(cursor, limit int) *Error {
	return New(CategoryInvariant, "MARK_CURSOR_OUT_OF_RANGE",
		fmt.Sprintf("mark cursor %d out of range [0,%d)", cursor, limit),
		map[string]any{"cursor": cursor, "limit": limit})
}
