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

// Verify reports whether every invariant in spec.md §3 currently holds:
// every free list is acyclic and internally consistent, every free block
// sits in the list matching its size class, and every recorded OS chunk's
// boundary tags agree from its left fencepost to its right one.
func (h *Heap) Verify() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.initialized {
		return true
	}

	for i := range h.lists {
		sentinel := &h.lists[i]
		if !listIsAcyclic(sentinel) {
			return false
		}
		if !listLinksConsistent(sentinel) {
			return false
		}
		if !listMembershipMatches(sentinel, i) {
			return false
		}
	}

	for _, left := range h.osChunks {
		if !chunkBoundaryTagsAgree(left) {
			return false
		}
	}

	return true
}

// listIsAcyclic runs Floyd's tortoise-and-hare over a circular sentinel
// list, treating the sentinel as the terminator. A cycle among the
// non-sentinel nodes (one that never reaches the sentinel) is corruption.
func listIsAcyclic(sentinel *blockHeader) bool {
	slow, fast := sentinel, sentinel
	for {
		slow = slow.next
		if slow == sentinel {
			return true
		}
		fast = fast.next
		if fast == sentinel {
			return true
		}
		fast = fast.next
		if fast == sentinel {
			return true
		}
		if slow == fast {
			return false
		}
	}
}

func listLinksConsistent(sentinel *blockHeader) bool {
	for cur := sentinel.next; cur != sentinel; cur = cur.next {
		if cur.next.prev != cur || cur.prev.next != cur {
			return false
		}
	}
	return true
}

// listMembershipMatches checks that every block in list i is UNALLOCATED
// and that its size class is actually i.
func listMembershipMatches(sentinel *blockHeader, i int) bool {
	for cur := sentinel.next; cur != sentinel; cur = cur.next {
		if cur.state() != stateUnallocated {
			return false
		}
		if sizeClassFor(cur.size()) != i {
			return false
		}
	}
	return true
}

// chunkBoundaryTagsAgree walks one OS chunk from its left fencepost,
// checking that every block's right neighbor reports the correct
// left_size, that no two adjacent blocks are both free, and that the
// walk terminates at the chunk's right fencepost.
func chunkBoundaryTagsAgree(left *blockHeader) bool {
	cur := left
	for {
		right := rightNeighbor(cur)
		if right.leftSize() != cur.size() {
			return false
		}
		if cur.state() == stateUnallocated && right.state() == stateUnallocated {
			return false
		}
		if right.state() == stateFencepost {
			return true
		}
		cur = right
	}
}
