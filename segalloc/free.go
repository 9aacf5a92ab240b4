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

import (
	"fmt"
	"io"
	"os"
	"unsafe"
)

// abortOutput and abortExit are swappable so tests can observe the
// double-free diagnostic without killing the test binary.
var (
	abortOutput io.Writer = os.Stderr
	abortExit             = os.Exit
)

// Free returns a block previously returned by Alloc. A nil ptr is a
// no-op. Freeing an already-free block aborts the process; freeing a
// fencepost (which should never happen with a pointer obtained from
// Alloc) is silently ignored, per spec.md §7.
func (h *Heap) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	block := headerFromData(ptr)
	switch block.state() {
	case stateUnallocated:
		h.abortDoubleFree(ptr)
		return
	case stateFencepost:
		return
	}

	block.setState(stateUnallocated)
	h.coalesceAndInsert(block)
}

func (h *Heap) abortDoubleFree(ptr unsafe.Pointer) {
	fmt.Fprintf(abortOutput, "segalloc: double free detected for pointer %p\n", ptr)
	abortExit(2)
}

// coalesceAndInsert merges block with any UNALLOCATED neighbors and
// re-inserts the resulting free block into the appropriate segregated
// list, reusing the splice point of an absorbed last-list neighbor when
// possible instead of always pushing at the head (spec.md §4.4).
func (h *Heap) coalesceAndInsert(block *blockHeader) {
	var coalR, coalL bool
	var rPrev, rNext, lPrev, lNext *blockHeader

	if right := rightNeighbor(block); right.state() == stateUnallocated {
		coalR = sizeClassFor(right.size()) == nLists-1
		rPrev, rNext = right.prev, right.next
		unlink(right)
		block.setSize(block.size() + right.size())
		rightNeighbor(block).setLeftSize(block.size())
	}

	if left := leftNeighbor(block); left.state() == stateUnallocated {
		coalL = sizeClassFor(left.size()) == nLists-1
		lPrev, lNext = left.prev, left.next
		unlink(left)
		left.setSize(left.size() + block.size())
		rightNeighbor(left).setLeftSize(left.size())
		block = left
	}

	switch {
	case coalL:
		spliceBetween(lPrev, block, lNext)
	case coalR:
		spliceBetween(rPrev, block, rNext)
	default:
		pushHead(&h.lists[sizeClassFor(block.size())], block)
	}
}
