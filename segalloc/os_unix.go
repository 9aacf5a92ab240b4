//go:build darwin || linux || freebsd || netbsd || openbsd || dragonfly

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
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapSource extends the process heap with anonymous, private mappings.
// golang.org/x/sys/unix's Mmap does not expose an address hint, so unlike
// a real brk()-based allocator this cannot request placement; contiguity
// between consecutive chunks is then whatever the kernel happens to
// produce, same as spec.md's "when no foreign extensions intervene"
// already allows for. Correctness never depends on it - the fusion path
// in alloc.go is exercised deterministically by tests using a fake
// regionSource instead.
type mmapSource struct{}

func newOSSource() regionSource {
	return mmapSource{}
}

func (mmapSource) extend(n uintptr) (unsafe.Pointer, error) {
	data, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(&data[0]), nil
}
