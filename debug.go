// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build lockfree_debug

package lockfree

import "fmt"

// assertManaged diagnoses programming faults by panicking when ok is false.
// NodePool.ReleaseIndex uses it to reject an index outside the pool's
// storage; a double release, or an in-range index from another pool, is
// not detected. It is compiled in only under -tags lockfree_debug; release builds elide
// it entirely (see debug_off.go), matching the spec's position that misuse
// is undefined behaviour except in diagnostic builds.
func assertManaged(ok bool, what string) {
	if !ok {
		panic(fmt.Sprintf("lockfree: %s", what))
	}
}
