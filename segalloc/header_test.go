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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockHeaderSizeAndStatePacking(t *testing.T) {
	var b blockHeader
	b.setSize(128)
	b.setState(stateAllocated)

	assert.EqualValues(t, 128, b.size())
	assert.EqualValues(t, stateAllocated, b.state())

	b.setState(stateUnallocated)
	assert.EqualValues(t, 128, b.size(), "changing state must not disturb size")
	assert.EqualValues(t, stateUnallocated, b.state())

	b.setSize(256)
	assert.EqualValues(t, stateUnallocated, b.state(), "changing size must not disturb state")
	assert.EqualValues(t, 256, b.size())
}

func TestBlockHeaderLeftSize(t *testing.T) {
	var b blockHeader
	b.setLeftSize(40)
	assert.EqualValues(t, 40, b.leftSize())
}

func TestSetSizeRejectsMisalignedSize(t *testing.T) {
	var b blockHeader
	assert.Panics(t, func() { b.setSize(33) })
}

func TestRoundUp8(t *testing.T) {
	cases := []struct{ in, want uintptr }{
		{0, 0}, {1, 8}, {7, 8}, {8, 8}, {9, 16}, {63, 64}, {64, 64},
	}
	for _, c := range cases {
		assert.EqualValues(t, c.want, roundUp8(c.in), "roundUp8(%d)", c.in)
	}
}

func TestSizeClassForExactClasses(t *testing.T) {
	// payload of (i+1)*8 bytes should land in class i, for every exact class.
	for i := 0; i < nLists-1; i++ {
		payload := uintptr(i+1) * 8
		total := payload + headerSize
		assert.Equal(t, i, sizeClassFor(total), "payload=%d", payload)
	}
}

func TestSizeClassForClampsToLastList(t *testing.T) {
	hugePayload := uintptr(nLists) * 8 * 100
	assert.Equal(t, nLists-1, sizeClassFor(hugePayload+headerSize))
}

func TestSizeClassForClampsAtZero(t *testing.T) {
	// A block whose payload is smaller than one word still maps to class 0,
	// never a negative index.
	assert.Equal(t, 0, sizeClassFor(headerSize))
}

func TestHeaderSizeIsMultipleOf8(t *testing.T) {
	assert.Zero(t, headerSize%8)
}
