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

func TestVerifyOnUninitializedHeap(t *testing.T) {
	h := newTestHeap(4096, 4, 0)
	assert.True(t, h.Verify())
}

func TestVerifyAfterAllocAndFree(t *testing.T) {
	h := newTestHeap(4096, 8, 0)

	ptrs := make([]unsafe.Pointer, 0, 32)
	for i := 0; i < 32; i++ {
		p := h.Alloc(uintptr(16 + 8*i))
		require.NotNil(t, p)
		ptrs = append(ptrs, p)
		assert.True(t, h.Verify())
	}
	for _, p := range ptrs {
		h.Free(p)
		assert.True(t, h.Verify())
	}
}

func TestVerifyDetectsBrokenListLink(t *testing.T) {
	h := newTestHeap(4096, 4, 0)
	require.True(t, h.ensureInitLocked())

	// Corrupt the last list's head so its prev no longer points back at
	// the sentinel - a broken prev/next pair Verify must catch.
	sentinel := &h.lists[nLists-1]
	head := sentinel.next
	require.NotSame(t, sentinel, head)
	head.prev = head

	assert.False(t, h.Verify())
}

func TestVerifyDetectsWrongSizeClassMembership(t *testing.T) {
	h := newTestHeap(4096, 4, 0)
	require.True(t, h.ensureInitLocked())

	// Move the lone free block into class 0, where it plainly does not
	// belong.
	sentinel := &h.lists[nLists-1]
	block := sentinel.next
	unlink(block)
	pushHead(&h.lists[0], block)

	assert.False(t, h.Verify())
}

func TestVerifyDetectsBrokenBoundaryTag(t *testing.T) {
	h := newTestHeap(4096, 4, 0)
	require.True(t, h.ensureInitLocked())

	right := h.lastFencePost
	right.setLeftSize(right.leftSize() + 8)

	assert.False(t, h.Verify())
}
