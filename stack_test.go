// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree_test

import (
	"sync"
	"testing"

	"github.com/davidra/lockfree"
)

func TestStackLIFOSerial(t *testing.T) {
	s := lockfree.NewLocalStack[int](3)

	if !s.Empty() {
		t.Fatalf("new stack should be Empty")
	}

	for i := range 3 {
		if !s.Push(i) {
			t.Fatalf("Push(%d): unexpected exhaustion", i)
		}
	}
	if s.Push(999) {
		t.Fatalf("Push on full stack should fail")
	}

	for i := 2; i >= 0; i-- {
		v, ok := s.Pop()
		if !ok {
			t.Fatalf("Pop: unexpected empty stack")
		}
		if v != i {
			t.Fatalf("Pop: got %d, want %d (LIFO order)", v, i)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Fatalf("Pop on empty stack should fail")
	}
	if !s.Empty() {
		t.Fatalf("drained stack should be Empty")
	}
}

func TestStackNonAtomicMatchesAtomic(t *testing.T) {
	s := lockfree.NewLocalStack[int](4)

	s.NonAtomicPush(1)
	s.Push(2)
	s.NonAtomicPush(3)

	want := []int{3, 2, 1}
	for _, w := range want {
		v, ok := s.NonAtomicPop()
		if !ok || v != w {
			t.Fatalf("NonAtomicPop: got (%d, %v), want %d", v, ok, w)
		}
	}
}

func TestStackConcurrentChurnConservesElements(t *testing.T) {
	const capacity = 300
	const tasks = 600

	s := lockfree.NewLocalStack[int](capacity)

	var wg sync.WaitGroup
	var pushed, popped int64
	var mu sync.Mutex

	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < tasks; i++ {
				if s.Push(i) {
					mu.Lock()
					pushed++
					mu.Unlock()
				}
				if _, ok := s.Pop(); ok {
					mu.Lock()
					popped++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	s.Close()
	remaining := 0
	for {
		if _, ok := s.NonAtomicPop(); !ok {
			break
		}
		remaining++
	}
	if remaining != 0 {
		t.Fatalf("Close should have already drained the stack, found %d left", remaining)
	}
	if popped > pushed {
		t.Fatalf("popped (%d) exceeds pushed (%d)", popped, pushed)
	}
}

func TestStackClose(t *testing.T) {
	s := lockfree.NewLocalStack[string](4)
	s.Push("a")
	s.Push("b")
	s.Close()
	if !s.Empty() {
		t.Fatalf("stack should be Empty after Close")
	}
	if !s.Push("c") {
		t.Fatalf("stack should accept pushes again after Close drained it")
	}
}
