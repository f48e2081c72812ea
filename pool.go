// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import (
	"math"

	"code.hybscloud.com/spin"
)

// poolSlot holds one pool element. While free, next addresses the
// following free slot; while acquired, next is meaningless and val holds
// the caller's payload. The original algorithm overlays both uses on the
// same storage to save memory; Go keeps them as separate fields of one
// struct instead; unsafe-overlaying a generic T is not a trick worth
// reaching for here, and the memory saved is one Index per slot.
type poolSlot[T any] struct {
	next Index
	val  T
}

// NodePool is a bounded, lock-free freelist allocator of fixed-size slots,
// parameterised over the slot type T. It allocates its storage once, on
// construction, and never resizes or frees individual slots back to the
// runtime — only Acquire/Release cycle slots through the freelist. Stack,
// Queue, and MPSCQueue are all built on a NodePool of their own node type;
// a single NodePool may be shared by multiple containers of the same node
// type (the package doc's Quick Start shows this).
type NodePool[T any] struct {
	_        pad
	head     taggedIndex
	_        pad
	slots    []poolSlot[T]
	capacity int
}

// NewNodePool allocates a pool of the given capacity. Storage is allocated
// once; the pool never grows. Panics if capacity is not a positive number
// that fits in an Index.
func NewNodePool[T any](capacity int) *NodePool[T] {
	if capacity <= 0 {
		panic("lockfree: pool capacity must be > 0")
	}
	if capacity > math.MaxUint32-1 {
		panic("lockfree: pool capacity exceeds the addressable index range")
	}

	p := &NodePool[T]{
		slots:    make([]poolSlot[T], capacity),
		capacity: capacity,
	}
	for i := 0; i < capacity; i++ {
		if i == capacity-1 {
			p.slots[i].next = MaxIndex
		} else {
			p.slots[i].next = Index(i + 1)
		}
	}
	p.head.init(Index(0), 0)
	return p
}

// AcquireIndex returns the index of an uninitialised slot, or (MaxIndex,
// false) if the pool is exhausted. Wait-free with retry: an uncontended
// call completes in a bounded number of steps; under contention a caller
// may retry, but the freelist as a whole always makes progress.
func (p *NodePool[T]) AcquireIndex() (Index, bool) {
	idx, tag := p.head.loadRelaxed()
	sw := spin.Wait{}
	for {
		if idx == MaxIndex {
			return MaxIndex, false
		}
		next := p.slots[idx].next
		if p.head.compareAndSwapAcqRel(idx, tag, next, tag+1) {
			return idx, true
		}
		sw.Once()
		idx, tag = p.head.loadAcquire()
	}
}

// Acquire acquires a slot and stores v into it, returning the slot's index.
// This is the generic-Go stand-in for the original's placement-new: there
// is no deferred-construction step to model in a GC'd language, so Acquire
// simply assigns the already-constructed value.
func (p *NodePool[T]) Acquire(v T) (Index, bool) {
	idx, ok := p.AcquireIndex()
	if !ok {
		return MaxIndex, false
	}
	p.slots[idx].val = v
	return idx, true
}

// ReleaseIndex returns a slot to the freelist without touching its
// content. The slot's value is undefined to callers after this point.
func (p *NodePool[T]) ReleaseIndex(idx Index) {
	assertManaged(p.Manages(idx), "release of an index not managed by this pool")

	head, tag := p.head.loadRelaxed()
	sw := spin.Wait{}
	for {
		p.slots[idx].next = head
		if p.head.compareAndSwapAcqRel(head, tag, idx, tag) {
			return
		}
		sw.Once()
		head, tag = p.head.loadRelaxed()
	}
}

// Release zeroes the slot's value, then returns it to the freelist. The
// zeroing stands in for the original's explicit destructor call — in Go
// it additionally drops any references the value held, so the garbage
// collector can reclaim them promptly instead of waiting for the slot to
// be reused.
func (p *NodePool[T]) Release(idx Index) {
	var zero T
	p.slots[idx].val = zero
	p.ReleaseIndex(idx)
}

// At returns a pointer to the slot's value. Callers must only dereference
// it while the slot is known to be acquired by them.
func (p *NodePool[T]) At(idx Index) *T {
	return &p.slots[idx].val
}

// Empty reports whether the pool has no free slots left. O(1), relaxed.
func (p *NodePool[T]) Empty() bool {
	idx, _ := p.head.loadRelaxed()
	return idx == MaxIndex
}

// Full reports whether every slot in the pool is currently free. O(N);
// only meaningful when the pool is quiescent (no concurrent
// Acquire/Release in flight).
func (p *NodePool[T]) Full() bool {
	idx, _ := p.head.loadRelaxed()
	for i := 0; i < p.capacity; i++ {
		if idx == MaxIndex {
			return false
		}
		idx = p.slots[idx].next
	}
	return true
}

// Manages reports whether idx addresses a slot within this pool's storage.
func (p *NodePool[T]) Manages(idx Index) bool {
	return idx != MaxIndex && int(idx) < p.capacity
}

// Capacity returns the fixed number of slots the pool was constructed with.
func (p *NodePool[T]) Capacity() int {
	return p.capacity
}
