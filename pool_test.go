// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree_test

import (
	"sync"
	"testing"

	"github.com/davidra/lockfree"
)

func TestNodePoolAcquireReleaseSerial(t *testing.T) {
	p := lockfree.NewNodePool[int](3)

	if p.Capacity() != 3 {
		t.Fatalf("Capacity: got %d, want 3", p.Capacity())
	}
	if !p.Full() {
		t.Fatalf("new pool should be Full")
	}

	var idxs [3]lockfree.Index
	for i := range 3 {
		idx, ok := p.Acquire(i + 1)
		if !ok {
			t.Fatalf("Acquire(%d): unexpected exhaustion", i)
		}
		idxs[i] = idx
		if got := *p.At(idx); got != i+1 {
			t.Fatalf("At(%d): got %d, want %d", idx, got, i+1)
		}
	}

	if p.Full() {
		t.Fatalf("pool should not be Full once every slot is acquired")
	}
	if !p.Empty() {
		t.Fatalf("pool should be Empty once every slot is acquired")
	}
	if _, ok := p.Acquire(999); ok {
		t.Fatalf("Acquire on exhausted pool should fail")
	}

	for _, idx := range idxs {
		p.Release(idx)
	}
	if !p.Full() {
		t.Fatalf("pool should be Full again after releasing every slot")
	}
}

func TestNodePoolManages(t *testing.T) {
	p := lockfree.NewNodePool[int](4)
	idx, ok := p.Acquire(1)
	if !ok {
		t.Fatalf("Acquire: unexpected exhaustion")
	}
	if !p.Manages(idx) {
		t.Fatalf("Manages(%d): want true", idx)
	}
	if p.Manages(lockfree.MaxIndex) {
		t.Fatalf("Manages(MaxIndex): want false")
	}
	if p.Manages(lockfree.Index(100)) {
		t.Fatalf("Manages(100): want false for a 4-slot pool")
	}
}

func TestNodePoolConcurrentAcquireRelease(t *testing.T) {
	const capacity = 500
	const goroutines = 16

	p := lockfree.NewNodePool[int](capacity)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				idx, ok := p.Acquire(i)
				if !ok {
					continue
				}
				p.Release(idx)
			}
		}()
	}
	wg.Wait()

	if !p.Full() {
		t.Fatalf("pool should be Full once every goroutine released everything it acquired")
	}
}

func TestNodePoolNeverOveracquires(t *testing.T) {
	const capacity = 64
	p := lockfree.NewNodePool[int](capacity)

	var wg sync.WaitGroup
	acquired := make(chan lockfree.Index, capacity*2)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx, ok := p.AcquireIndex()
				if !ok {
					return
				}
				acquired <- idx
			}
		}()
	}
	wg.Wait()
	close(acquired)

	seen := make(map[lockfree.Index]bool)
	count := 0
	for idx := range acquired {
		if seen[idx] {
			t.Fatalf("index %d acquired twice without an intervening release", idx)
		}
		seen[idx] = true
		count++
	}
	if count != capacity {
		t.Fatalf("got %d distinct acquisitions, want %d", count, capacity)
	}
}
