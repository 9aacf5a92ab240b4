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

	"github.com/bytedance/gopkg/lang/dirtmake"

	"github.com/cloudwego/gopkg/internal/hack"
)

// Dump renders a human-readable snapshot of every OS chunk's layout,
// naming each block's state and size in address order, for use in tests
// and ad-hoc debugging of a stuck allocator. It is named as an external
// collaborator in spec.md §1 ("debug printing") and is not on the
// allocate/free hot path.
func (h *Heap) Dump() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.initialized {
		return "segalloc: heap not initialized\n"
	}

	buf := dirtmake.Bytes(0, 4096)
	for ci, left := range h.osChunks {
		buf = append(buf, fmt.Sprintf("chunk %d @ %p:\n", ci, left)...)
		cur := left
		for {
			buf = append(buf, fmt.Sprintf("  %p size=%-6d left_size=%-6d state=%s\n",
				cur, cur.size(), cur.leftSize(), stateName(cur.state()))...)
			if cur.state() == stateFencepost && cur != left {
				break
			}
			cur = rightNeighbor(cur)
		}
	}
	return hack.ByteSliceToString(buf)
}

func stateName(s uint64) string {
	switch s {
	case stateUnallocated:
		return "FREE"
	case stateAllocated:
		return "ALLOC"
	case stateFencepost:
		return "FENCEPOST"
	default:
		return "?"
	}
}
