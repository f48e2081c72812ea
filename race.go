// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lockfree

// RaceEnabled is true when the race detector is active.
// Tests can check it to skip the heaviest contention stress cases: the race
// detector cannot observe happens-before relationships established purely
// through acquire/release atomics on separate variables (the pool's
// freelist next field, a stack node's prev, a queue node's prev) and
// reports false positives on otherwise-correct lock-free code.
const RaceEnabled = true
