// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import "code.hybscloud.com/iox"

// BlockingPush retries push, backing off with [iox.Backoff] between
// attempts, until it succeeds. push is any of this package's Push methods
// (Stack[T].Push, Queue[T].Push, MPSCQueue[T].Push) bound to its
// receiver.
//
//	stack := NewLocalStack[int](64)
//	BlockingPush(stack.Push, 42)
func BlockingPush[T any](push func(T) bool, v T) {
	backoff := iox.Backoff{}
	for !push(v) {
		backoff.Wait()
	}
}

// BlockingPop retries pop, backing off with [iox.Backoff] between
// attempts, until it yields a value. pop is any of this package's Pop
// methods bound to its receiver.
//
//	stack := NewLocalStack[int](64)
//	v := BlockingPop(stack.Pop)
func BlockingPop[T any](pop func() (T, bool)) T {
	backoff := iox.Backoff{}
	for {
		v, ok := pop()
		if ok {
			return v
		}
		backoff.Wait()
	}
}
