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
	"sync"
	"unsafe"
)

// Heap is the process-wide state described in spec.md §3: the segregated
// free lists, the bookkeeping needed to detect chunk contiguity and
// support Verify, and the single mutex serializing every public entry
// point. The zero value is not usable; construct one with NewHeap.
type Heap struct {
	mu sync.Mutex

	lists [nLists]blockHeader

	// lastFencePost is the right fencepost of the most recently acquired
	// OS chunk, used to detect contiguity with the next one.
	lastFencePost *blockHeader

	// base is the address of the very first fencepost. It is recorded
	// but not read anywhere; Dump walks osChunks instead.
	base unsafe.Pointer

	// osChunks records the left fencepost of every OS chunk that is not
	// contiguous with its predecessor, bounded at maxOSChunks entries,
	// for Verify to walk.
	osChunks []*blockHeader

	source    regionSource
	arenaSize uintptr

	initialized bool
}

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithArenaSize overrides the default OS chunk size (one page). Chiefly
// useful in tests that want to force exhaustion/fusion without mapping
// gigabytes of memory.
func WithArenaSize(n uintptr) Option {
	return func(h *Heap) {
		h.arenaSize = n
	}
}

// withSource overrides the OS collaborator. Unexported: only this
// package's own tests construct a Heap over a fake regionSource.
func withSource(src regionSource) Option {
	return func(h *Heap) {
		h.source = src
	}
}

// NewHeap constructs a Heap. The first OS chunk is not requested until
// the first call to Alloc; Free and Verify on a heap that has not yet
// allocated do not request one.
func NewHeap(opts ...Option) *Heap {
	h := &Heap{arenaSize: defaultArenaSize}
	initLists(&h.lists)
	for _, opt := range opts {
		opt(h)
	}
	if h.source == nil {
		h.source = newOSSource()
	}
	return h
}

// ensureInitLocked runs the one-time setup from spec.md §4.1. The caller
// must already hold h.mu. It is safe to call on every entry point; after
// the first successful call it is a no-op.
func (h *Heap) ensureInitLocked() bool {
	if h.initialized {
		return true
	}

	left, right, inner, ok := acquireChunk(h.source, h.arenaSize)
	if !ok {
		return false
	}

	h.osChunks = append(h.osChunks, left)
	h.lastFencePost = right
	h.base = unsafe.Pointer(left)
	pushHead(&h.lists[nLists-1], inner)

	h.initialized = true
	return true
}

var (
	defaultHeapOnce sync.Once
	defaultHeap     *Heap
)

// Default returns the package-wide Heap instance, constructing it (but
// not yet mapping any memory) on first use.
func Default() *Heap {
	defaultHeapOnce.Do(func() {
		defaultHeap = NewHeap()
	})
	return defaultHeap
}
