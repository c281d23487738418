package gc

import "github.com/mscollect/mscollect/internal/gcerrors"

// Every error the collector raises is fatal by contract: a contract
// violation, an allocation exhaustion that survives a retry, or an
// internal invariant failure are all bugs or resource conditions the
// API surface is not specified to recover from. Go has no analog of the
// original's abort()-on-assertion-failure; panicking an unrecovered
// panic terminates the process the same way, and lets a host program
// that genuinely wants to catch it install its own recover().

func corruptHeaderError(h *header) *gcerrors.Error {
	return gcerrors.CorruptHeader(addrOf(h), h.magic, headerMagic)
}

func fatalf(err *gcerrors.Error) {
	panic(err)
}
