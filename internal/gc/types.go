package gc

import (
	"github.com/mscollect/mscollect/internal/gcerrors"
	"github.com/mscollect/mscollect/internal/gctype"
)

// NewType registers a new type descriptor of the given instance size
// with nPtrs managed-pointer slots, to be filled in with SetOffset.
func (c *Collector) NewType(size uintptr, nPtrs int) gctype.ID {
	defer c.enter("NewType")()

	id, err := c.types.New(size, nPtrs)
	if err != nil {
		fatalf(wrapTypeError(err))
	}

	return id
}

// SetOffset sets the byte offset, within one instance, of the i-th
// managed-pointer slot of t. Every slot must be set exactly once before
// t is used in an allocation.
func (c *Collector) SetOffset(t gctype.ID, i int, offset uintptr) {
	defer c.enter("SetOffset")()

	if err := c.types.SetOffset(t, i, offset); err != nil {
		fatalf(wrapTypeError(err))
	}
}

func wrapTypeError(err error) *gcerrors.Error {
	return gcerrors.New(gcerrors.CategoryContract, "INVALID_TYPE_PARAMS", err.Error(), nil)
}
