// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import "code.hybscloud.com/iox"

// ErrWouldBlock is an alias for [iox.ErrWouldBlock], exported so callers
// that bridge this package into a larger iox-based pipeline have a
// consistent error identity to classify against.
//
// Push and Pop never return an error themselves — a pool or container has
// exactly one failure mode (exhausted, empty) and a bool already says it
// plainly. Nothing in this package produces ErrWouldBlock; it is provided
// for callers composing their own retry logic around Push/Pop, the way
// BlockingPush and BlockingPop do internally with [iox.Backoff].
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates an operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
