//go:build windows

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

	"golang.org/x/sys/windows"
)

// virtualAllocSource extends the process heap with VirtualAlloc, the
// Windows analogue of the anonymous mmap used on Unix targets.
type virtualAllocSource struct{}

func newOSSource() regionSource {
	return virtualAllocSource{}
}

func (virtualAllocSource) extend(n uintptr) (unsafe.Pointer, error) {
	addr, err := windows.VirtualAlloc(0, n, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(addr), nil
}
