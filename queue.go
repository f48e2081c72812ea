// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

// QueueNode is the node type a Queue[T] acquires from its NodePool.
// Exported so callers building a shared pool can name it:
// NewNodePool[QueueNode[Job]](n+1) — the +1 accounts for the queue's
// permanent sentinel (see NewQueue).
//
// prev is atomic, unlike the stack's: the spec requires the consumer's
// acquire-load of a node's prev to synchronise with the producer's
// release-store of the same field in Push's last step.
type QueueNode[T any] struct {
	data T
	prev taggedIndex
}

// Queue is a two-pointer (front/back) MPMC FIFO queue with a sentinel
// node, following the "publish then initialise then link" push protocol:
// producers are wait-free up to the pool-exhaustion check; the consumer is
// lock-free.
type Queue[T any] struct {
	_     pad
	front taggedIndex
	_     pad
	back  taggedIndex
	_     pad
	pool  *NodePool[QueueNode[T]]
	count elementCount
}

func newQueue[T any](pool *NodePool[QueueNode[T]]) *Queue[T] {
	sentinel, ok := pool.AcquireIndex()
	if !ok {
		panic("lockfree: pool has no room for the queue's sentinel node")
	}
	pool.At(sentinel).prev.init(MaxIndex, 0)

	q := &Queue[T]{pool: pool}
	q.front.init(sentinel, 0)
	q.back.init(sentinel, 0)
	return q
}

// NewQueue creates a queue backed by a pool the caller owns and may share
// with other queues of the same T. The pool must be sized to cover every
// item live across all sharing queues, plus one slot per queue for its
// sentinel.
func NewQueue[T any](pool *NodePool[QueueNode[T]]) *Queue[T] {
	return newQueue(pool)
}

// NewLocalQueue creates a queue with its own pool, sized to capacity plus
// the one slot the sentinel requires — the caller requests exactly
// capacity usable items.
func NewLocalQueue[T any](capacity int) *Queue[T] {
	return newQueue(NewNodePool[QueueNode[T]](capacity + 1))
}

// Push acquires a fresh node to serve as the new sentinel, exchanges it
// into back, then constructs the payload into the node that was
// previously the sentinel and links it in. Returns false if the pool is
// exhausted.
//
// If this goroutine is preempted between the exchange and the link, the
// queue looks empty to consumers even though the exchange already
// happened — see Pop's doc comment. This is the spec's documented
// in-flight-producer caveat, not a bug: other producers and all consumers
// remain lock-free against each other.
func (q *Queue[T]) Push(v T) bool {
	fresh, ok := q.pool.AcquireIndex()
	if !ok {
		return false
	}
	q.pool.At(fresh).prev.init(MaxIndex, 0)

	oldBack, _ := q.back.swapAcqRel(fresh, 0)

	node := q.pool.At(oldBack)
	node.data = v
	node.prev.storeRelease(fresh, 0)
	q.count.incRelaxed()
	return true
}

// Pop removes and returns the oldest pushed item still in the queue.
// Returns (zero, false) if the queue looks empty — either because it
// truly is, or because a producer is mid-Push (see Push's doc comment).
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	front, tag := q.front.loadRelaxed()
	node := q.pool.At(front)
	next, _ := node.prev.loadAcquire()
	for next != MaxIndex {
		// front's own slot holds the oldest undequeued value: Push fills a
		// node in before storing its prev link, so a populated node (one
		// whose prev is not MaxIndex) carries its data directly rather
		// than in the node prev addresses. The acquire load above already
		// synchronises with the producer's release store of prev, so the
		// CAS that commits the new front needs no ordering of its own.
		if q.front.compareAndSwapRelaxed(front, tag, next, tag+1) {
			result := node.data
			q.pool.Release(front)
			q.count.decRelaxed()
			return result, true
		}
		front, tag = q.front.loadRelaxed()
		node = q.pool.At(front)
		next, _ = node.prev.loadAcquire()
	}
	return zero, false
}

// NonAtomicPush is Push without the exchange/CAS machinery, for use only
// when the caller can guarantee serial access.
func (q *Queue[T]) NonAtomicPush(v T) bool {
	fresh, ok := q.pool.AcquireIndex()
	if !ok {
		return false
	}
	q.pool.At(fresh).prev.init(MaxIndex, 0)

	back, _ := q.back.loadRelaxed()
	q.back.storeRelaxed(fresh, 0)

	node := q.pool.At(back)
	node.data = v
	node.prev.storeRelaxed(fresh, 0)
	q.count.incRelaxed()
	return true
}

// NonAtomicPop is Pop without the CAS, for use only when the caller can
// guarantee serial access.
func (q *Queue[T]) NonAtomicPop() (T, bool) {
	var zero T
	front, tag := q.front.loadRelaxed()
	node := q.pool.At(front)
	next, _ := node.prev.loadRelaxed()
	if next == MaxIndex {
		return zero, false
	}
	q.front.storeRelaxed(next, tag+1)
	result := node.data
	q.pool.Release(front)
	q.count.decRelaxed()
	return result, true
}

// Empty reports whether the queue looks empty right now. Same caveats as
// Pop: not linearisable against an in-flight Push.
func (q *Queue[T]) Empty() bool {
	front, _ := q.front.loadRelaxed()
	next, _ := q.pool.At(front).prev.loadAcquire()
	return next == MaxIndex
}

// Len returns an approximate element count, or -1 if the diagnostic
// counter was compiled out.
func (q *Queue[T]) Len() int { return q.count.Len() }

// Close drains the queue via NonAtomicPop, discarding remaining items.
// Callers must ensure the queue is quiescent before calling Close.
func (q *Queue[T]) Close() {
	for {
		if _, ok := q.NonAtomicPop(); !ok {
			return
		}
	}
}
