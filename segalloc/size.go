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

// AllocSize returns the usable payload size of a pointer previously
// returned by Alloc - the number of bytes the caller may safely read or
// write starting at ptr. It exists for malloc.Realloc, which needs the
// old block's size to decide how much of it to preserve without reaching
// into segalloc's header internals itself.
//
// ptr must currently be allocated; passing a freed or fencepost pointer
// is caller error and returns 0.
func (h *Heap) AllocSize(ptr unsafe.Pointer) uintptr {
	if ptr == nil {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	block := headerFromData(ptr)
	if block.state() != stateAllocated {
		return 0
	}
	return block.size() - headerSize
}
