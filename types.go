// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

// Container is the set of observers common to Stack[T], Queue[T], and
// MPSCQueue[T]. It is not required to use any of them — it exists for
// code that wants to log or drain whichever container it was handed
// without caring which one.
type Container interface {
	Empty() bool
	Len() int
	Close()
}

var (
	_ Container = (*Stack[int])(nil)
	_ Container = (*Queue[int])(nil)
	_ Container = (*MPSCQueue[int])(nil)
)
