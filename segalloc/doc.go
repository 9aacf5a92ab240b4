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

// Package segalloc implements a segregated free-list allocator with
// boundary-tag coalescing over a heap grown incrementally from the OS.
//
// A Heap manages memory in fixed-size chunks acquired from the OS (see
// os_unix.go / os_windows.go). Every region inside a chunk - free,
// allocated, or a chunk-boundary fencepost - starts with a blockHeader
// (header.go). Free blocks of equal payload size live in one of N_LISTS
// segregated lists (freelist.go); the last list holds everything too big
// for an exact size class and is searched first-fit.
//
// Alloc, Free and Verify, along with the read-only AllocSize and Dump,
// each take the Heap's single mutex for their whole duration - there is
// no finer-grained locking and no per-thread caching, by design.
package segalloc
