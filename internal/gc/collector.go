// Package gc implements a conservative, non-recursive mark-and-sweep
// collector for heap objects allocated by single-threaded client code.
// Clients request typed or untyped memory through a Collector; the
// collector tracks every live allocation in an Allocation Trie,
// periodically discovers which allocations are still reachable from the
// machine stack, callee-saved registers, and an explicit root registry,
// and reclaims the rest.
//
// The collector is deliberately single-threaded: see Collector.entered
// and Collector.enter in collector.go. It is grounded on the original's gc.d.c,
// adapted from C globals into a Collector value so a process can run
// more than one independent heap if it wants to (Default returns the
// conventional process-wide singleton most callers actually want).
package gc

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"github.com/mscollect/mscollect/internal/gcerrors"
	"github.com/mscollect/mscollect/internal/gctype"
	"github.com/mscollect/mscollect/internal/sysmem"
	"github.com/mscollect/mscollect/internal/trie"
)

// CountMin and SizeMin lower-bound the adaptive collection thresholds:
// however few allocations or bytes are live, a collection never fires
// before at least this many accumulate, so a program that starts with
// three long-lived objects doesn't pay for a collection on its fourth.
const (
	CountMin uintptr = 1024
	SizeMin  uintptr = 1 << 20 // 1 MiB
)

// maxAllocBytes and maxArrayCount bound a single alloc/alloc_array
// request, matching the 2^24-1 ceiling the external interface specifies.
const (
	maxAllocBytes uintptr = 1<<24 - 1
	maxArrayCount int     = 1<<24 - 1
)

// Stats reports the collector's running counters, for print_stats.
type Stats struct {
	LiveCount        uintptr
	LiveBytes        uintptr
	CountThreshold   uintptr
	SizeThreshold    uintptr
	TotalAllocations uintptr
	TotalCollections uintptr
}

// Collector owns the Allocation Trie, Root Trie, Type Registry, and
// collection-trigger state for one independent managed heap.
//
// Collector carries no mutex. That is deliberate, not an oversight: the
// scheduling model is strictly single-threaded and cooperative (no
// mutator/collector concurrency, collect runs inline on the caller's
// thread), and a mutex here would quietly paper over the one thing the
// contract actually asks implementations to detect — concurrent or
// reentrant use from more than one goroutine. entered is that detector:
// a simple atomic CAS flag held for the duration of every public
// operation, tripped into a fatal gcerrors.Reentrant on violation rather
// than silently serializing (which would hide the bug) or racing (which
// would corrupt the tries).
type Collector struct {
	entered int32

	allocations *trie.Trie
	roots       *trie.Trie
	types       *gctype.Registry
	pool        *sysmem.Pool
	nodeSrc     *collectorNodeSource

	bottom    uintptr
	bottomSet bool

	logger  *log.Logger
	verbose bool

	countThreshold uintptr
	sizeThreshold  uintptr
	liveCount      uintptr
	liveBytes      uintptr

	totalAllocs      uintptr
	totalCollections uintptr
}

// Option configures a Collector at construction time.
type Option func(*Collector)

// WithCountThreshold overrides the initial live-allocation-count
// threshold. It is still clamped to CountMin.
func WithCountThreshold(n uintptr) Option {
	return func(c *Collector) { c.countThreshold = max(n, CountMin) }
}

// WithSizeThreshold overrides the initial live-byte-size threshold. It
// is still clamped to SizeMin.
func WithSizeThreshold(n uintptr) Option {
	return func(c *Collector) { c.sizeThreshold = max(n, SizeMin) }
}

// WithLogger overrides the destination for the per-collection log lines
// enabled by WithVerbose. PrintStats writes to its own io.Writer instead.
func WithLogger(l *log.Logger) Option {
	return func(c *Collector) { c.logger = l }
}

// WithVerbose turns on per-collection logging of mark/sweep counts.
func WithVerbose(v bool) Option {
	return func(c *Collector) { c.verbose = v }
}

// New returns an independent collector with empty tries and a fresh type
// registry.
func New(opts ...Option) *Collector {
	c := &Collector{
		types:          gctype.NewRegistry(),
		countThreshold: CountMin,
		sizeThreshold:  SizeMin,
		logger:         log.New(os.Stderr, "gc: ", log.LstdFlags),
	}

	c.pool = sysmem.NewPool()
	c.nodeSrc = &collectorNodeSource{pool: c.pool, collector: c}
	c.allocations = trie.New(c.nodeSrc)
	c.roots = trie.New(c.nodeSrc)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// enter marks the collector as in-use for the duration of one public
// operation and returns a function that releases it. A second Enter
// before the first returns (concurrent use, or a reentrant call from
// within a mark/sweep callback) is a fatal contract violation.
func (c *Collector) enter(operation string) func() {
	if !atomic.CompareAndSwapInt32(&c.entered, 0, 1) {
		fatalf(gcerrors.Reentrant(operation))
	}

	return func() { atomic.StoreInt32(&c.entered, 0) }
}

// IsEmpty reports whether the collector currently holds zero live
// allocations.
func (c *Collector) IsEmpty() bool {
	defer c.enter("IsEmpty")()

	return c.allocations.IsEmpty()
}

// Stats returns a snapshot of the collector's running counters.
func (c *Collector) Stats() Stats {
	defer c.enter("Stats")()

	return Stats{
		LiveCount:        c.liveCount,
		LiveBytes:        c.liveBytes,
		CountThreshold:   c.countThreshold,
		SizeThreshold:    c.sizeThreshold,
		TotalAllocations: c.totalAllocs,
		TotalCollections: c.totalCollections,
	}
}

// PrintStats writes a human-readable summary of Stats to w.
func (c *Collector) PrintStats(w io.Writer) {
	s := c.Stats()

	fmt.Fprintf(w, "gc stats:\n")
	fmt.Fprintf(w, "\tlive_count = %d\n", s.LiveCount)
	fmt.Fprintf(w, "\tlive_bytes = %d\n", s.LiveBytes)
	fmt.Fprintf(w, "\tcount_threshold = %d\n", s.CountThreshold)
	fmt.Fprintf(w, "\tsize_threshold = %d\n", s.SizeThreshold)
	fmt.Fprintf(w, "\ttotal_allocations = %d\n", s.TotalAllocations)
	fmt.Fprintf(w, "\ttotal_collections = %d\n", s.TotalCollections)
}
