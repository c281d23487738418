// Package gctype holds the immutable per-type descriptors the mark engine
// uses to find managed-pointer slots inside typed allocations: a byte size
// and an ordered list of pointer-slot offsets within one instance.
package gctype

import "fmt"

// MaxTypes bounds the registry so a type id fits in 7 bits and can be
// packed into an allocation header alongside the other header fields.
const MaxTypes = 127

// PointerSize is the size, in bytes, of one managed-pointer slot.
const PointerSize = 8

// ID identifies a registered type. 0 is reserved to mean "no type" (a raw,
// untyped allocation with no interior managed pointers).
type ID int

// NoType is the reserved id for raw, untyped allocations.
const NoType ID = 0

// Type is an immutable descriptor: the byte size of one instance, and the
// byte offsets within one instance that hold managed pointers. Offsets are
// fixed once every slot has been set via Registry.SetOffset; reading a
// descriptor before that is a caller error.
type Type struct {
	size         uintptr
	pointerCount int
	offsets      []uintptr
	set          []bool
	complete     bool
}

// Size returns the byte size of one instance of this type.
func (t *Type) Size() uintptr { return t.size }

// PointerCount returns the number of managed-pointer slots per instance.
func (t *Type) PointerCount() int { return t.pointerCount }

// Offsets returns the byte offsets of every managed-pointer slot, in the
// order they were registered. It panics if the type's offsets were never
// fully set — reading an incomplete descriptor is a contract violation,
// not a recoverable condition.
func (t *Type) Offsets() []uintptr {
	if !t.complete {
		panic("gctype: read of type descriptor before all offsets were set")
	}

	return t.offsets
}

// Registry is a process- or collector-scoped vector of type descriptors,
// indexed from 1 (index 0 means "no type"). It mirrors the original
// gc_new_type/gc_set_offset pair: New allocates a descriptor with all
// offsets zeroed and unset; SetOffset fills slots one at a time.
type Registry struct {
	types []*Type // types[0] is unused; ids are 1-based
}

// NewRegistry returns an empty type registry.
func NewRegistry() *Registry {
	return &Registry{types: make([]*Type, 1, MaxTypes+1)}
}

// New registers a new type of the given instance size with nPtrs managed
// pointer slots (to be filled in with SetOffset) and returns its id.
func (r *Registry) New(size uintptr, nPtrs int) (ID, error) {
	if nPtrs < 0 {
		return NoType, fmt.Errorf("gctype: negative pointer count %d", nPtrs)
	}

	if uintptr(nPtrs)*PointerSize > size {
		return NoType, fmt.Errorf("gctype: %d pointer slots do not fit in a %d-byte instance", nPtrs, size)
	}

	if len(r.types) > MaxTypes {
		return NoType, fmt.Errorf("gctype: registry full (max %d types)", MaxTypes)
	}

	t := &Type{
		size:         size,
		pointerCount: nPtrs,
		offsets:      make([]uintptr, nPtrs),
		set:          make([]bool, nPtrs),
		complete:     nPtrs == 0,
	}

	r.types = append(r.types, t)

	return ID(len(r.types) - 1), nil
}

// SetOffset sets the byte offset, within one instance, of the i-th
// managed-pointer slot. Every slot must be set exactly once before the
// type is used in an allocation.
func (r *Registry) SetOffset(id ID, i int, offset uintptr) error {
	t, err := r.lookup(id)
	if err != nil {
		return err
	}

	if i < 0 || i >= t.pointerCount {
		return fmt.Errorf("gctype: pointer index %d out of range [0,%d)", i, t.pointerCount)
	}

	if offset+PointerSize > t.size {
		return fmt.Errorf("gctype: offset %d does not leave room for a pointer in a %d-byte instance", offset, t.size)
	}

	t.offsets[i] = offset
	t.set[i] = true

	t.complete = allTrue(t.set)

	return nil
}

// Lookup returns the descriptor for id. It panics on an invalid id: an
// unknown type id reaching the mark engine is a contract violation, not a
// condition callers are expected to handle.
func (r *Registry) Lookup(id ID) *Type {
	t, err := r.lookup(id)
	if err != nil {
		panic(err)
	}

	return t
}

func (r *Registry) lookup(id ID) (*Type, error) {
	if id <= NoType || int(id) >= len(r.types) {
		return nil, fmt.Errorf("gctype: invalid type id %d", id)
	}

	return r.types[id], nil
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}

	return true
}
