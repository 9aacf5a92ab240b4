/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package segalloc

import "unsafe"

// Alloc returns a naturally-aligned region of at least size bytes, or nil
// if size is zero or the heap cannot be grown any further. It takes the
// Heap's single mutex for the whole call.
func (h *Heap) Alloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.ensureInitLocked() {
		return nil
	}

	if size < 16 {
		size = 16
	}
	size = roundUp8(size)
	need := size + headerSize

	for {
		if ptr, ok := h.tryAlloc(need); ok {
			return ptr
		}
		if !h.growHeapLocked() {
			return nil
		}
	}
}

// tryAlloc performs one first-fit search over the segregated lists for a
// block of at least need bytes (header included). It reports false if no
// list can currently satisfy the request.
func (h *Heap) tryAlloc(need uintptr) (unsafe.Pointer, bool) {
	start := sizeClassFor(need)
	for i := start; i < nLists; i++ {
		sentinel := &h.lists[i]
		if isEmptyList(sentinel) {
			continue
		}

		if i < nLists-1 {
			// Exact-size class: every block here already satisfies need.
			block := sentinel.next
			unlink(block)
			return h.splitAndPlace(block, need, nil, nil), true
		}

		// Last, unbounded class: walk first-fit.
		for n := sentinel.next; n != sentinel; n = n.next {
			if n.size() >= need {
				prev, next := n.prev, n.next
				unlink(n)
				return h.splitAndPlace(n, need, prev, next), true
			}
		}
		// Spec: "if none exists in this list, treat the lists as
		// exhausted" - do not keep scanning past the last list.
		return nil, false
	}
	return nil, false
}

// splitAndPlace carves an allocated block of exactly need bytes out of
// block (which has block.size() >= need), returning the new block's
// payload pointer. oldPrev/oldNext, if non-nil, are the free-list
// neighbors block had before it was removed from the last, unbounded
// list - used to splice a leftover remainder back into the same slot
// instead of always pushing it to the head.
func (h *Heap) splitAndPlace(block *blockHeader, need uintptr, oldPrev, oldNext *blockHeader) unsafe.Pointer {
	extra := block.size() - need

	var allocated *blockHeader
	if extra >= headerSize {
		// The low part (at block's original address) stays free with
		// size extra; the high part becomes the allocated block.
		allocated = headerAt(unsafe.Add(unsafe.Pointer(block), extra))
		allocated.setSize(need)
		allocated.setLeftSize(extra)
		rightNeighbor(allocated).setLeftSize(need)

		block.setSize(extra)
		h.reinsertRemainder(block, oldPrev, oldNext)
	} else {
		allocated = block
	}

	allocated.setState(stateAllocated)
	return dataPointer(allocated)
}

// reinsertRemainder re-homes the free remainder left over from a split.
func (h *Heap) reinsertRemainder(rem, oldPrev, oldNext *blockHeader) {
	class := sizeClassFor(rem.size())
	if class < nLists-1 {
		pushHead(&h.lists[class], rem)
		return
	}
	if oldPrev != nil && oldNext != nil {
		spliceBetween(oldPrev, rem, oldNext)
		return
	}
	pushHead(&h.lists[nLists-1], rem)
}

// growHeapLocked acquires one more OS chunk, fusing it with the heap's
// most recent chunk when the two happen to be contiguous, and makes the
// resulting free block available for the next tryAlloc attempt.
func (h *Heap) growHeapLocked() bool {
	left, right, inner, ok := acquireChunk(h.source, h.arenaSize)
	if !ok {
		return false
	}

	var free *blockHeader
	if contiguous(h.lastFencePost, left) {
		free = h.fuseChunk(inner)
	} else {
		if len(h.osChunks) < maxOSChunks {
			h.osChunks = append(h.osChunks, left)
		}
		free = inner
	}

	right.setLeftSize(free.size())
	pushHead(&h.lists[nLists-1], free)
	h.lastFencePost = right
	return true
}

// fuseChunk merges a newly acquired chunk's opening fenceposts into the
// tail of the previous chunk, per spec.md §4.3. It returns the single
// free block spanning both the old tail and the new chunk's inner block,
// not yet linked into any free list.
func (h *Heap) fuseChunk(newInner *blockHeader) *blockHeader {
	t := h.lastFencePost
	p := leftNeighbor(t)

	if p.state() == stateUnallocated {
		unlink(p)
		p.setSize(p.size() + 2*headerSize + newInner.size())
		return p
	}

	t.setState(stateUnallocated)
	t.setSize(newInner.size() + 2*headerSize)
	return t
}
