// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lockfree provides pool-backed lock-free containers: a bounded
// node allocator and three concurrent containers built on top of it.
//
//   - NodePool[T]: bounded, wait-free-with-retry freelist allocator
//   - Stack[T]:    Treiber-style MPMC LIFO
//   - Queue[T]:    two-pointer MPMC FIFO with a sentinel node
//   - MPSCQueue[T]: Vyukov-style multi-producer single-consumer FIFO
//
// All three containers acquire and release nodes through a NodePool
// rather than allocating and freeing them individually: the pool's
// storage is allocated once, up front, and capacity bounds the number of
// items the container can hold at once.
//
// # Quick Start
//
// Direct constructors cover the common case of one container owning its
// own pool:
//
//	s := lockfree.NewLocalStack[int](1024)
//	q := lockfree.NewLocalQueue[Job](4096)
//	m := lockfree.NewLocalMPSCQueue[Event](4096)
//
// To share one pool across several containers of the same node type,
// construct the pool first and pass it to NewStack/NewQueue/NewMPSCQueue:
//
//	pool := lockfree.NewNodePool[lockfree.StackNode[int]](4096)
//	a := lockfree.NewStack(pool)
//	b := lockfree.NewStack(pool)
//
// # Basic Usage
//
// Push and Pop report success with a bool, never an error — a container
// has exactly one failure mode in each direction (pool exhausted, or
// container empty), and there is nothing else worth returning:
//
//	s := lockfree.NewLocalStack[int](64)
//	if !s.Push(42) {
//	    // pool exhausted
//	}
//	v, ok := s.Pop()
//	if !ok {
//	    // stack was empty
//	}
//
// # Common Patterns
//
// Worker pool (MPMC queue, many submitters, many workers):
//
//	q := lockfree.NewLocalQueue[Job](4096)
//
//	for range numWorkers {
//	    go func() {
//	        backoff := iox.Backoff{}
//	        for {
//	            job, ok := q.Pop()
//	            if !ok {
//	                backoff.Wait()
//	                continue
//	            }
//	            backoff.Reset()
//	            job.Run()
//	        }
//	    }()
//	}
//
//	func Submit(j Job) bool { return q.Push(j) }
//
// Event aggregation (MPSC queue, many sources, one consumer):
//
//	q := lockfree.NewLocalMPSCQueue[Event](4096)
//
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            lockfree.BlockingPush(q.Push, ev)
//	        }
//	    }(sensor)
//	}
//
//	go func() { // the single consumer
//	    for {
//	        ev := lockfree.BlockingPop(q.Pop)
//	        aggregate(ev)
//	    }
//	}()
//
// Work-stealing-free batch draining (any container, one goroutine at a
// time, typically during shutdown):
//
//	stack.Close() // drains and discards whatever remains
//
// # Blocking Adapters
//
// [BlockingPush] and [BlockingPop] wrap any Push/Pop method with an
// [code.hybscloud.com/iox.Backoff] retry loop, for callers that would
// rather block than poll. They accept the bound method value directly:
//
//	lockfree.BlockingPush(q.Push, job)
//	job := lockfree.BlockingPop(q.Pop)
//
// # Capacity
//
// Unlike an array-backed ring buffer, a NodePool's capacity is not
// rounded to a power of two — any positive capacity up to
// math.MaxUint32-1 is accepted as-is, since indices are addressed
// directly rather than masked.
//
// Len() is provided on every container as an approximate, non-
// linearisable diagnostic only, and returns -1 unless the module is
// built with -tags lockfree_debug. It must never be used for control
// flow — check the bool Push/Pop already return instead.
//
// # Thread Safety
//
// Stack and Queue are safe for any number of concurrent producers and
// consumers. MPSCQueue.Push is safe from any number of concurrent
// producers, but MPSCQueue.Pop must only ever be called from a single
// goroutine at a time — calling it concurrently from two goroutines
// races on the consumer-private front field.
//
// NonAtomicPush/NonAtomicPop on Stack and Queue, and Close on all three
// containers, require the caller to guarantee exclusive access for the
// duration of the call: they exist for setup, teardown, and other
// known-serial phases, and offer no protection against concurrent use.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established purely through
// atomic loads/stores on separate variables — the pool's freelist next
// field, a stack node's prev, a queue node's prev. These fields are
// correct under the Go memory model but may produce false positives
// under -race on the heaviest contention tests; see [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/spin] for CPU-pause
// backoff inside CAS retry loops, and [code.hybscloud.com/iox] for
// semantic error classification and the blocking adapters' backoff.
package lockfree
