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

const (
	// state values packed into the low 3 bits of sizeAndState. Every
	// block_size is a multiple of 8, so those bits are otherwise unused.
	stateUnallocated uint64 = 0
	stateAllocated   uint64 = 1
	stateFencepost   uint64 = 2

	stateMask uint64 = 0x7
)

// blockHeader precedes every region this package manages: free blocks,
// allocated blocks, and the fencepost sentinels bracketing each OS chunk.
// prev/next are only meaningful while the block is stateUnallocated; for
// allocated blocks those bytes belong to the caller's payload.
type blockHeader struct {
	sizeAndState uint64
	leftSizeVal  uint64
	prev         *blockHeader
	next         *blockHeader
}

// headerSize is ALLOC_HEADER_SIZE: one header, naturally 8-byte aligned.
const headerSize = unsafe.Sizeof(blockHeader{})

func init() {
	if headerSize%8 != 0 {
		panic("segalloc: blockHeader size must be a multiple of 8")
	}
}

func (h *blockHeader) size() uintptr {
	return uintptr(h.sizeAndState &^ stateMask)
}

func (h *blockHeader) setSize(sz uintptr) {
	if sz&7 != 0 {
		panic("segalloc: block size not a multiple of 8")
	}
	h.sizeAndState = uint64(sz) | (h.sizeAndState & stateMask)
}

func (h *blockHeader) state() uint64 {
	return h.sizeAndState & stateMask
}

func (h *blockHeader) setState(s uint64) {
	h.sizeAndState = (h.sizeAndState &^ stateMask) | s
}

func (h *blockHeader) leftSize() uintptr {
	return uintptr(h.leftSizeVal)
}

func (h *blockHeader) setLeftSize(sz uintptr) {
	h.leftSizeVal = uint64(sz)
}

// leftNeighbor returns the header immediately to the left of h in address
// order, located in O(1) via h's boundary tag (left_size).
func leftNeighbor(h *blockHeader) *blockHeader {
	return (*blockHeader)(unsafe.Add(unsafe.Pointer(h), -int(h.leftSize())))
}

// rightNeighbor returns the header immediately to the right of h in
// address order.
func rightNeighbor(h *blockHeader) *blockHeader {
	return (*blockHeader)(unsafe.Add(unsafe.Pointer(h), h.size()))
}

// headerAt overlays a blockHeader onto raw memory at the given address.
// This, together with the accessors above, is the only place in the
// package that reinterprets untyped memory as a blockHeader.
func headerAt(p unsafe.Pointer) *blockHeader {
	return (*blockHeader)(p)
}

// dataPointer returns the address of the payload following h.
func dataPointer(h *blockHeader) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(h), headerSize)
}

// headerFromData recovers the header preceding a payload pointer previously
// returned to a caller.
func headerFromData(p unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Add(p, -int(headerSize)))
}

// roundUp8 rounds n up to the next multiple of 8.
func roundUp8(n uintptr) uintptr {
	return (n + 7) &^ 7
}

// sizeClassFor returns the free-list index for a block of the given total
// size (header included). Lists below N_LISTS-1 hold exactly one payload
// size each; sizes too large for an exact class collapse onto the last,
// unbounded list.
func sizeClassFor(totalSize uintptr) int {
	payload := int(totalSize) - int(headerSize)
	idx := payload/8 - 1
	if idx < 0 {
		idx = 0
	}
	if idx > nLists-1 {
		idx = nLists - 1
	}
	return idx
}
