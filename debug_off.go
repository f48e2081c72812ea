// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !lockfree_debug

package lockfree

// assertManaged is a no-op outside of -tags lockfree_debug builds.
func assertManaged(ok bool, what string) {}
