/*
 * Copyright 2024 CloudWeGo Authors
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

package hack

import "unsafe"

// ByteSliceToString converts []byte to string without copy. Used by
// segalloc/debug.go to return its finished heap-dump buffer as a string
// without copying it.
func ByteSliceToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
