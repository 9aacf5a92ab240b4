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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocZeroReturnsNil(t *testing.T) {
	h := newTestHeap(4096, 4, 0)
	assert.Nil(t, h.Alloc(0))
}

func TestAllocReturnsWritableMemory(t *testing.T) {
	h := newTestHeap(4096, 4, 0)
	p := h.Alloc(100)
	require.NotNil(t, p)

	b := unsafe.Slice((*byte)(p), 100)
	for i := range b {
		b[i] = byte(i)
	}
	for i := range b {
		require.EqualValues(t, byte(i), b[i])
	}
	assert.True(t, h.Verify())
}

func TestAllocBelowMinimumIsRoundedUp(t *testing.T) {
	h := newTestHeap(4096, 4, 0)
	p := h.Alloc(1)
	require.NotNil(t, p)
	assert.GreaterOrEqual(t, h.AllocSize(p), uintptr(16))
}

func TestAllocExactClassIsReusedLIFO(t *testing.T) {
	h := newTestHeap(4096, 4, 0)

	p1 := h.Alloc(24)
	require.NotNil(t, p1)
	h.Free(p1)

	p2 := h.Alloc(24)
	require.NotNil(t, p2)
	assert.Equal(t, p1, p2, "freeing then re-allocating the same exact size should reuse the block")
}

func TestAllocSplitLeavesUsableRemainder(t *testing.T) {
	h := newTestHeap(4096, 4, 0)

	// Carving a 32-byte block out of the chunk's one big free block must
	// leave a correctly re-inserted remainder available for further use.
	p1 := h.Alloc(32)
	require.NotNil(t, p1)
	p2 := h.Alloc(32)
	require.NotNil(t, p2)
	require.NotEqual(t, p1, p2)

	p3 := h.Alloc(2000)
	require.NotNil(t, p3, "remainder of the split must still satisfy a large request")
	assert.True(t, h.Verify())
}

func TestAllocGrowsHeapOnExhaustion(t *testing.T) {
	// A tiny arena holds one reasonably sized block; the next allocation
	// must transparently acquire a second chunk.
	h := newTestHeap(256, 4, 0)

	p1 := h.Alloc(150)
	require.NotNil(t, p1)

	p2 := h.Alloc(150)
	require.NotNil(t, p2, "second allocation should have grown the heap into a new chunk")
	assert.NotEqual(t, p1, p2)
	assert.True(t, h.Verify())
}

func TestAllocReturnsNilWhenSourceIsExhausted(t *testing.T) {
	// Only enough backing memory for a single chunk: once its inner block
	// is fully carved up, growHeapLocked must fail and Alloc must return
	// nil rather than panic or loop forever.
	h := newTestHeap(256, 1, 0)

	var last unsafe.Pointer
	for i := 0; i < 64; i++ {
		p := h.Alloc(16)
		if p == nil {
			break
		}
		last = p
	}
	require.NotNil(t, last, "at least one allocation should have succeeded")
	assert.Nil(t, h.Alloc(4096))
}
