// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import "code.hybscloud.com/atomix"

// Index addresses one slot in a NodePool's storage. It stands in for the
// spec's node pointer: since every container's nodes live in a pool backed
// by storage allocated once and never moved for the pool's lifetime, an
// index into that storage is a stable, GC-safe substitute for a raw
// pointer. Real pointer-in-uint64 tagging (stash a 48-bit virtual address
// plus a 16-bit tag in one word) is not an option in a garbage-collected
// language: the collector cannot see a pointer hidden inside a uint64, so
// it would be free to reclaim or relocate the object out from under it.
type Index uint32

// MaxIndex is the sentinel Index meaning "no slot" (an empty freelist, the
// bottom of a stack, the far end of a queue).
const MaxIndex Index = 1<<32 - 1

// pad is cache-line padding to keep independently-contended atomics from
// sharing a line.
type pad [64]byte

// taggedIndex is a single 64-bit atomic word packing an Index in the low
// 32 bits and an ABA-defeating tag in the high 32 bits. It is the
// structural head of the pool's freelist, the stack's top and the MPMC
// queue's front/back: one word, one CAS, ABA-safe by construction. This plays
// the role the spec assigns to both the pool's (index, tag) head and the
// containers' "tagged pointer" heads — merged into one primitive because,
// with nodes addressed by index rather than by pointer, there is no longer
// a meaningful difference between the two.
type taggedIndex struct {
	word atomix.Uint64
}

func packTaggedIndex(idx Index, tag uint32) uint64 {
	return uint64(tag)<<32 | uint64(uint32(idx))
}

func unpackTaggedIndex(w uint64) (Index, uint32) {
	return Index(uint32(w)), uint32(w >> 32)
}

func (t *taggedIndex) init(idx Index, tag uint32) {
	t.word.StoreRelaxed(packTaggedIndex(idx, tag))
}

func (t *taggedIndex) loadRelaxed() (Index, uint32) {
	return unpackTaggedIndex(t.word.LoadRelaxed())
}

func (t *taggedIndex) loadAcquire() (Index, uint32) {
	return unpackTaggedIndex(t.word.LoadAcquire())
}

func (t *taggedIndex) storeRelaxed(idx Index, tag uint32) {
	t.word.StoreRelaxed(packTaggedIndex(idx, tag))
}

func (t *taggedIndex) storeRelease(idx Index, tag uint32) {
	t.word.StoreRelease(packTaggedIndex(idx, tag))
}

// compareAndSwapAcqRel is the CAS used by the pool's acquire and release
// and the stack's push and pop: acq-rel on success synchronises with a
// matching acquire load on the other side.
func (t *taggedIndex) compareAndSwapAcqRel(oldIdx Index, oldTag uint32, newIdx Index, newTag uint32) bool {
	return t.word.CompareAndSwapAcqRel(packTaggedIndex(oldIdx, oldTag), packTaggedIndex(newIdx, newTag))
}

// compareAndSwapRelaxed is used where the acquire edge has already been
// established by a prior load (the queue's front CAS: the acquire load of
// front.prev already happens-after the producer's release store, so the
// CAS that commits the new front needs no ordering of its own).
func (t *taggedIndex) compareAndSwapRelaxed(oldIdx Index, oldTag uint32, newIdx Index, newTag uint32) bool {
	return t.word.CompareAndSwapRelaxed(packTaggedIndex(oldIdx, oldTag), packTaggedIndex(newIdx, newTag))
}

// swapAcqRel unconditionally replaces the word and returns the previous
// value: the "exchange" step of the MPMC queue's push, which needs no
// comparison because it always succeeds. (The MPSC queue swaps its own
// untagged atomix.Uint64 back directly.)
func (t *taggedIndex) swapAcqRel(idx Index, tag uint32) (Index, uint32) {
	return unpackTaggedIndex(t.word.SwapAcqRel(packTaggedIndex(idx, tag)))
}

// idxTag is a plain, non-atomic (index, tag) pair. It backs the stack
// node's prev field, which the spec specifies as non-atomic: a node's prev
// is written once before the node is published via the top CAS, and read
// once after the node has been observed at top, so no atomic is needed —
// only the happens-before edge the top CAS itself provides.
type idxTag struct {
	idx Index
	tag uint32
}
