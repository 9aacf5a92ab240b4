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

// Package malloc is a C-flavored convenience layer over segalloc: the
// familiar Malloc/Free/Calloc/Realloc names, composed from segalloc's
// Alloc/Free/Verify on the package-default Heap. Each call here locks
// segalloc's Heap independently; none of these functions hold a lock
// across a call into another public segalloc entry point.
package malloc

import (
	"unsafe"

	"github.com/cloudwego/gopkg/segalloc"
)

// Malloc returns size bytes of uninitialized memory, or nil if size <= 0
// or the heap cannot be grown any further.
func Malloc(size int) unsafe.Pointer {
	if size <= 0 {
		return nil
	}
	return segalloc.Default().Alloc(uintptr(size))
}

// Free returns a block previously obtained from Malloc, Calloc, or
// Realloc. Freeing nil, or a block twice, is handled per segalloc.Free.
func Free(ptr unsafe.Pointer) {
	segalloc.Default().Free(ptr)
}

// Calloc returns n*size bytes of zeroed memory, or nil if n <= 0, size <=
// 0, n*size overflows an int, or the heap cannot satisfy the request.
func Calloc(n, size int) unsafe.Pointer {
	if n <= 0 || size <= 0 {
		return nil
	}
	total := n * size
	if total/n != size {
		return nil
	}

	ptr := segalloc.Default().Alloc(uintptr(total))
	if ptr == nil {
		return nil
	}
	b := unsafe.Slice((*byte)(ptr), total)
	for i := range b {
		b[i] = 0
	}
	return ptr
}

// Realloc resizes the block at ptr to size bytes, preserving the leading
// min(oldSize, size) bytes of the original contents.
//
// Realloc(nil, size) behaves as Malloc(size). Realloc(ptr, size) with
// size <= 0 behaves as Free(ptr) and returns nil.
func Realloc(ptr unsafe.Pointer, size int) unsafe.Pointer {
	if ptr == nil {
		return Malloc(size)
	}
	if size <= 0 {
		Free(ptr)
		return nil
	}

	h := segalloc.Default()
	oldSize := h.AllocSize(ptr)

	newPtr := h.Alloc(uintptr(size))
	if newPtr == nil {
		return nil
	}

	n := oldSize
	if uintptr(size) < n {
		n = uintptr(size)
	}
	if n > 0 {
		dst := unsafe.Slice((*byte)(newPtr), n)
		src := unsafe.Slice((*byte)(ptr), n)
		copy(dst, src)
	}

	h.Free(ptr)
	return newPtr
}

// Verify reports whether the package-default heap's internal invariants
// currently hold. Meant for tests and diagnostics, not hot paths.
func Verify() bool {
	return segalloc.Default().Verify()
}
