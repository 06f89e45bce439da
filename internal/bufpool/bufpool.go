// Package bufpool is the scoped block-memory allocator collaborator
// spec.md treats as external to pkg/mipcore (§5: "block-memory buffers
// are scoped per request and released on all exit paths, including error
// propagation"). It is ADAPTED from the teacher's internal/parallel
// WorkerPool's sync.Pool-backed statistics buffers: the goroutine
// work-stealing scheduler that pool belonged to has no counterpart here
// (parallel tree exploration is an explicit spec Non-goal), but the
// pooled-slice idiom survives, repurposed into size-classed buffer
// leasing for callers like pkg/mipcore's pseudo-cost updater.
package bufpool

import "sync"

// sizeClasses mirrors a typical slab allocator's doubling classes, large
// enough to cover one node's touched-variable set without repeated
// reallocation in the common case.
var sizeClasses = []int{16, 64, 256, 1024, 4096}

// IntPool leases []int slices (e.g. the pseudo-cost updater's touched-
// variable collection buffer, §4.3) in one of a small number of size
// classes. Requests larger than the biggest class fall back to a plain
// allocation that is never returned to the pool.
type IntPool struct {
	classes []*sync.Pool
}

// NewIntPool constructs an IntPool with one sync.Pool per size class.
func NewIntPool() *IntPool {
	p := &IntPool{classes: make([]*sync.Pool, len(sizeClasses))}
	for i := range sizeClasses {
		cap := sizeClasses[i]
		p.classes[i] = &sync.Pool{New: func() any {
			buf := make([]int, 0, cap)
			return &buf
		}}
	}
	return p
}

func (p *IntPool) classFor(hint int) int {
	for i, sz := range sizeClasses {
		if hint <= sz {
			return i
		}
	}
	return -1
}

// Get leases a zero-length []int with capacity at least hint. The
// returned release func must be called exactly once on every exit path
// (including error returns) to return the buffer to its class; calling
// it for an oversized request is a harmless no-op.
func (p *IntPool) Get(hint int) (buf []int, release func()) {
	ci := p.classFor(hint)
	if ci < 0 {
		return make([]int, 0, hint), func() {}
	}
	pooled := p.classes[ci].Get().(*[]int)
	out := (*pooled)[:0]
	return out, func() {
		cleared := out[:0]
		p.classes[ci].Put(&cleared)
	}
}

// Shared is the package-level pool used by pkg/mipcore's per-node
// collection buffers; a single scoped allocator is all one engine
// instance needs since node processing is single-threaded cooperative
// (§5 Shared-resource policy).
var Shared = NewIntPool()
