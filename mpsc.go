// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import "code.hybscloud.com/atomix"

// MPSCNode is the node type an MPSCQueue[T] acquires from its NodePool.
//
// prev is atomic but untagged: unlike the MPMC queue's front/back, this
// field is only ever written by unconditional stores (never a
// compare-based CAS), so there is no ABA hazard to guard against and a
// plain atomic index suffices.
type MPSCNode[T any] struct {
	data T
	prev atomix.Uint64
}

// MPSCQueue is a Vyukov-style non-intrusive multi-producer single-consumer
// queue: Push is wait-free and safe from any number of concurrent
// producers; Pop is lock-free but must only ever be called from a single
// consumer goroutine at a time.
type MPSCQueue[T any] struct {
	_     pad
	back  atomix.Uint64
	_     pad
	front Index // consumer-exclusive, never touched by producers
	pool  *NodePool[MPSCNode[T]]
	count elementCount
}

func newMPSCQueue[T any](pool *NodePool[MPSCNode[T]]) *MPSCQueue[T] {
	sentinel, ok := pool.AcquireIndex()
	if !ok {
		panic("lockfree: pool has no room for the mpsc queue's sentinel node")
	}
	pool.At(sentinel).prev.StoreRelease(uint64(MaxIndex))

	q := &MPSCQueue[T]{pool: pool, front: sentinel}
	q.back.StoreRelease(uint64(sentinel))
	return q
}

// NewMPSCQueue creates an MPSC queue backed by a pool the caller owns and
// may share with other MPSC queues of the same T.
func NewMPSCQueue[T any](pool *NodePool[MPSCNode[T]]) *MPSCQueue[T] {
	return newMPSCQueue(pool)
}

// NewLocalMPSCQueue creates an MPSC queue with its own pool, sized to
// capacity plus the one slot its sentinel requires.
func NewLocalMPSCQueue[T any](capacity int) *MPSCQueue[T] {
	return newMPSCQueue(NewNodePool[MPSCNode[T]](capacity + 1))
}

// Push acquires a node, stores v and a sentinel prev in it, exchanges it
// into back, then links the previous back node to it. Wait-free: the only
// loop is the pool's own acquire, which is itself lock-free. Returns
// false if the pool is exhausted.
//
// As with the MPMC queue, a producer preempted between the exchange and
// the link makes the queue look shorter than it is to the consumer until
// it resumes — the consumer simply has nothing new to pop yet.
func (q *MPSCQueue[T]) Push(v T) bool {
	idx, ok := q.pool.Acquire(MPSCNode[T]{data: v})
	if !ok {
		return false
	}
	q.pool.At(idx).prev.StoreRelaxed(uint64(MaxIndex))

	oldBack := Index(q.back.SwapAcqRel(uint64(idx)))
	q.pool.At(oldBack).prev.StoreRelease(uint64(idx))
	q.count.incRelaxed()
	return true
}

// Pop removes and returns the oldest item in the queue. Must only be
// called from one goroutine at a time; concurrent Pop calls race on the
// unsynchronised front field. Returns (zero, false) if the queue looks
// empty — including the transient window described in Push's doc
// comment.
func (q *MPSCQueue[T]) Pop() (T, bool) {
	var zero T
	next := Index(uint32(q.pool.At(q.front).prev.LoadAcquire()))
	if next == MaxIndex {
		return zero, false
	}
	node := q.pool.At(next)
	result := node.data
	q.pool.Release(q.front)
	q.front = next
	q.count.decRelaxed()
	return result, true
}

// Empty reports whether the queue looks empty to the consumer right now.
func (q *MPSCQueue[T]) Empty() bool {
	return Index(uint32(q.pool.At(q.front).prev.LoadAcquire())) == MaxIndex
}

// Len returns an approximate element count, or -1 if the diagnostic
// counter was compiled out.
func (q *MPSCQueue[T]) Len() int { return q.count.Len() }

// Close drains the queue via Pop, discarding remaining items. Callers
// must ensure no producer is still pushing before calling Close.
func (q *MPSCQueue[T]) Close() {
	for {
		if _, ok := q.Pop(); !ok {
			return
		}
	}
}
