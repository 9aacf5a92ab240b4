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
	"errors"
	"unsafe"
)

// fakeSource hands out chunks carved out of one pre-allocated slab,
// advancing by exactly n bytes per call and then skipping gap further
// bytes. gap == 0 makes every chunk contiguous with the previous one;
// gap > 0 guarantees the opposite, deterministically, without depending
// on where the real OS or Go's GC happens to place memory.
type fakeSource struct {
	slab   []byte
	offset uintptr
	gap    uintptr
}

func newFakeSource(totalSize uintptr) *fakeSource {
	return &fakeSource{slab: make([]byte, totalSize)}
}

func (f *fakeSource) extend(n uintptr) (unsafe.Pointer, error) {
	if f.offset+n > uintptr(len(f.slab)) {
		return nil, errors.New("fakeSource: out of space")
	}
	p := unsafe.Pointer(&f.slab[f.offset])
	f.offset += n + f.gap
	return p, nil
}

// newTestHeap builds a Heap over a fakeSource sized to hold exactly
// numChunks chunks of arenaSize bytes (plus gaps), contiguous or not.
func newTestHeap(arenaSize uintptr, numChunks int, gap uintptr) *Heap {
	src := newFakeSource(arenaSize*uintptr(numChunks) + gap*uintptr(numChunks))
	src.gap = gap
	return NewHeap(WithArenaSize(arenaSize), withSource(src))
}
