// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import "code.hybscloud.com/spin"

// StackNode is the node type a Stack[T] acquires from its NodePool. It is
// exported only so callers constructing a shared pool (NewStack's pool
// argument) can name it: NewNodePool[StackNode[Job]](n).
//
// prev is deliberately non-atomic: the spec requires it only be read after
// the node has been observed at top, and the top CAS that publishes the
// node already provides that happens-before edge (see tagged.go's idxTag).
type StackNode[T any] struct {
	data T
	prev idxTag
}

// Stack is a Treiber-style MPMC LIFO stack whose nodes live in a NodePool.
// Push and Pop are lock-free; NonAtomicPush/NonAtomicPop are for use only
// while the caller can guarantee no concurrent access (e.g. during setup
// or teardown).
type Stack[T any] struct {
	_     pad
	top   taggedIndex
	_     pad
	pool  *NodePool[StackNode[T]]
	count elementCount
}

// NewStack creates a stack backed by a pool the caller owns and may share
// with other stacks of the same T. The pool's capacity bounds the total
// number of items live across every stack sharing it.
func NewStack[T any](pool *NodePool[StackNode[T]]) *Stack[T] {
	s := &Stack[T]{pool: pool}
	s.top.init(MaxIndex, 0)
	return s
}

// NewLocalStack creates a stack with its own pool of the given capacity.
// The pool is private to this stack and is not reachable by callers.
func NewLocalStack[T any](capacity int) *Stack[T] {
	s := &Stack[T]{pool: NewNodePool[StackNode[T]](capacity)}
	s.top.init(MaxIndex, 0)
	return s
}

// Push acquires a node from the pool, stores v in it, and links it at the
// top of the stack. Returns false if the pool is exhausted.
func (s *Stack[T]) Push(v T) bool {
	idx, ok := s.pool.Acquire(StackNode[T]{data: v})
	if !ok {
		return false
	}
	s.linkTopAtomically(idx)
	s.count.incRelaxed()
	return true
}

func (s *Stack[T]) linkTopAtomically(idx Index) {
	node := s.pool.At(idx)
	top, tag := s.top.loadRelaxed()
	node.prev = idxTag{idx: top, tag: tag}

	sw := spin.Wait{}
	for !s.top.compareAndSwapAcqRel(top, tag, idx, tag) {
		sw.Once()
		top, tag = s.top.loadAcquire()
		node.prev = idxTag{idx: top, tag: tag}
	}
}

// Pop removes and returns the most recently pushed item. Returns (zero,
// false) if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	top, tag := s.top.loadAcquire()
	sw := spin.Wait{}
	for top != MaxIndex {
		node := s.pool.At(top)
		// Reading node.prev here is safe even though a concurrent Pop may
		// already have released this very slot: the pool never frees slot
		// memory, only recycles it, and the CAS below is what tells us
		// whether we actually won this node or raced with someone else.
		next := node.prev.idx
		if s.top.compareAndSwapAcqRel(top, tag, next, tag+1) {
			result := node.data
			s.pool.Release(top)
			s.count.decRelaxed()
			return result, true
		}
		sw.Once()
		top, tag = s.top.loadAcquire()
	}
	return zero, false
}

// NonAtomicPush is Push without the CAS retry loop, for use only when the
// caller can guarantee serial access.
func (s *Stack[T]) NonAtomicPush(v T) bool {
	idx, ok := s.pool.Acquire(StackNode[T]{data: v})
	if !ok {
		return false
	}
	top, tag := s.top.loadRelaxed()
	node := s.pool.At(idx)
	node.prev = idxTag{idx: top, tag: tag}
	s.top.storeRelaxed(idx, tag)
	s.count.incRelaxed()
	return true
}

// NonAtomicPop is Pop without the CAS retry loop, for use only when the
// caller can guarantee serial access.
func (s *Stack[T]) NonAtomicPop() (T, bool) {
	var zero T
	top, tag := s.top.loadRelaxed()
	if top == MaxIndex {
		return zero, false
	}
	node := s.pool.At(top)
	s.top.storeRelaxed(node.prev.idx, tag+1)
	result := node.data
	s.pool.Release(top)
	s.count.decRelaxed()
	return result, true
}

// Empty reports whether the stack currently holds no items. As with the
// pool, this is a relaxed, non-linearisable observer: useful for logic
// that is known to run serially, not for coordinating concurrent access.
func (s *Stack[T]) Empty() bool {
	top, _ := s.top.loadRelaxed()
	return top == MaxIndex
}

// Len returns an approximate element count, or -1 if the diagnostic
// counter was compiled out (see counts_release.go). Never use it for
// control flow.
func (s *Stack[T]) Len() int { return s.count.Len() }

// Close drains the stack via NonAtomicPop, discarding remaining items.
// Callers must ensure the stack is quiescent (no other goroutine is
// pushing or popping) before calling Close — the spec leaves concurrent
// destruction undefined, and this is no exception.
func (s *Stack[T]) Close() {
	for {
		if _, ok := s.NonAtomicPop(); !ok {
			return
		}
	}
}
