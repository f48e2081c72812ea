// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree_test

import (
	"sync"
	"testing"

	"github.com/davidra/lockfree"
)

func TestMPSCQueueFIFOSerial(t *testing.T) {
	q := lockfree.NewLocalMPSCQueue[int](4)

	if !q.Empty() {
		t.Fatalf("new mpsc queue should be Empty")
	}

	for i := range 4 {
		if !q.Push(i) {
			t.Fatalf("Push(%d): unexpected exhaustion", i)
		}
	}
	if q.Push(999) {
		t.Fatalf("Push on full mpsc queue should fail")
	}

	for i := range 4 {
		v, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop: unexpected empty mpsc queue")
		}
		if v != i {
			t.Fatalf("Pop: got %d, want %d (FIFO order)", v, i)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Fatalf("Pop on empty mpsc queue should fail")
	}
}

// TestMPSCQueueConcurrentProducersSingleConsumer matches the end-to-end
// scenario of several producers pushing concurrently while a single
// consumer goroutine drains: every value pushed must eventually be
// observed exactly once. The order in which values arrive is not checked.
func TestMPSCQueueConcurrentProducersSingleConsumer(t *testing.T) {
	const producers = 16
	const perProducer = 300
	const capacity = 64

	q := lockfree.NewLocalMPSCQueue[int](capacity)

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				lockfree.BlockingPush(q.Push, id*perProducer+i)
			}
		}(p)
	}

	seen := make(map[int]bool, producers*perProducer)
	var mu sync.Mutex
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		total := producers * perProducer
		for len(seen) < total {
			v, ok := q.Pop()
			if !ok {
				continue
			}
			mu.Lock()
			if seen[v] {
				mu.Unlock()
				t.Errorf("value %d observed twice", v)
				return
			}
			seen[v] = true
			mu.Unlock()
		}
	}()

	wg.Wait()
	<-consumerDone

	if len(seen) != producers*perProducer {
		t.Fatalf("consumer saw %d distinct values, want %d", len(seen), producers*perProducer)
	}
}

func TestMPSCQueueClose(t *testing.T) {
	q := lockfree.NewLocalMPSCQueue[string](4)
	q.Push("a")
	q.Push("b")
	q.Close()
	if !q.Empty() {
		t.Fatalf("mpsc queue should be Empty after Close")
	}
	if !q.Push("c") {
		t.Fatalf("mpsc queue should accept pushes again after Close drained it")
	}
}
