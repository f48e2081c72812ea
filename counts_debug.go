// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build lockfree_debug

package lockfree

import "code.hybscloud.com/atomix"

// elementCount is the optional diagnostic element counter the spec
// describes as "an observability hook, not a correctness requirement": an
// atomic count updated relaxed on every push/pop. It is an estimate, not
// linearisable with any other operation, and must never be used for
// control flow. Compiled in only under -tags lockfree_debug; see
// counts_release.go for the no-op form used otherwise.
type elementCount struct {
	n atomix.Int64
}

func (c *elementCount) incRelaxed() { c.n.AddRelaxed(1) }
func (c *elementCount) decRelaxed() { c.n.AddRelaxed(-1) }

// Len returns the approximate element count. It is a hint for diagnostics
// and logging only.
func (c *elementCount) Len() int { return int(c.n.LoadRelaxed()) }
