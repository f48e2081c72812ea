// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !lockfree_debug

package lockfree

// elementCount is elided entirely outside of -tags lockfree_debug builds:
// a zero-size struct whose methods compile away, so the diagnostic counter
// costs nothing in a release build.
type elementCount struct{}

func (c *elementCount) incRelaxed() {}
func (c *elementCount) decRelaxed() {}

// Len reports -1 ("unavailable") when the diagnostic counter was compiled
// out. Build with -tags lockfree_debug to get a real estimate.
func (c *elementCount) Len() int { return -1 }
