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

// nLists is N_LISTS: the number of segregated size classes. List i, for
// i < nLists-1, holds only free blocks whose payload is exactly (i+1)*8
// bytes; list nLists-1 holds every larger free block, in no particular
// order, and is searched first-fit.
const nLists = 59

// initLists turns every entry of lists into an empty circular sentinel:
// a node that is its own prev and next.
func initLists(lists *[nLists]blockHeader) {
	for i := range lists {
		s := &lists[i]
		s.prev = s
		s.next = s
	}
}

func isEmptyList(sentinel *blockHeader) bool {
	return sentinel.next == sentinel
}

// spliceBetween wires b in between prev and next, overwriting whatever
// links prev/next/b held before the call.
func spliceBetween(prev, b, next *blockHeader) {
	prev.next = b
	b.prev = prev
	b.next = next
	next.prev = b
}

// pushHead inserts b immediately after sentinel - the new head of the
// list - giving LIFO order for repeated small allocations.
func pushHead(sentinel, b *blockHeader) {
	spliceBetween(sentinel, b, sentinel.next)
}

// unlink removes b from whatever list it currently sits in, using only
// b's own prev/next. It does not touch b.prev/b.next, so a caller that
// saved them beforehand can still splice b back into the same slot.
func unlink(b *blockHeader) {
	b.prev.next = b.next
	b.next.prev = b.prev
}
