// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceSplitsWhenRemainderUsable(t *testing.T) {
	a := newTestAllocator(t, ModeSquish)
	a.region.(*MemRegion).Grow(128)

	addr := Addr(wordSize)
	a.writeFreeHeaderFooter(addr, 64, true)
	succ := addr + 64
	a.writeWord(succ, pack(0, false, true, false))

	a.place(addr, 64, 32)

	require.True(t, a.header(addr).isAlloc())
	require.EqualValues(t, 32, a.header(addr).payload())
	require.True(t, a.header(addr).isPrevAlloc())

	tail := addr + 32
	require.False(t, a.header(tail).isAlloc())
	require.EqualValues(t, 32, a.totalSize(tail))
	require.True(t, a.header(tail).isPrevAlloc())
	require.Equal(t, tail, a.lists.heads[classOf(32)])

	require.False(t, a.header(succ).isPrevAlloc(), "tail is free, so the successor's prev_alloc must be cleared")
}

func TestPlaceConsumesWholeWhenRemainderTooSmall(t *testing.T) {
	a := newTestAllocator(t, ModeSquish)
	a.region.(*MemRegion).Grow(128)

	addr := Addr(wordSize)
	a.writeFreeHeaderFooter(addr, 32, true) // 32-32 == 0, below minBlockSize
	succ := addr + 32
	a.writeWord(succ, pack(0, false, true, false))

	a.place(addr, 32, 32)

	require.True(t, a.header(addr).isAlloc())
	require.EqualValues(t, 32, a.header(addr).payload())
	require.True(t, a.header(succ).isPrevAlloc())
}

func TestPlaceSplitsWhenRemainderUsableSlabMode(t *testing.T) {
	a := newTestAllocator(t, ModeSlab)
	a.region.(*MemRegion).Grow(128)

	addr := Addr(wordSize)
	a.writeFreeHeaderFooter(addr, 80, true)
	succ := addr + 80
	a.writeWord(succ, pack(0, false, true, false))

	a.place(addr, 80, 32)

	require.True(t, a.header(addr).isAlloc())
	require.EqualValues(t, 32, a.header(addr).payload())

	tail := addr + 32
	require.False(t, a.header(tail).isAlloc())
	require.EqualValues(t, 48, a.totalSize(tail))
	require.Equal(t, tail, a.lists.heads[classOf(48)])
	require.False(t, a.header(succ).isPrevAlloc())
}

func TestPlaceConsumesWholeWhenRemainderBelowMinPlainBlock(t *testing.T) {
	a := newTestAllocator(t, ModeSlab)
	a.region.(*MemRegion).Grow(128)

	addr := Addr(wordSize)
	a.writeFreeHeaderFooter(addr, 64, true) // 64-48 == 16, below minPlainBlock (32)
	succ := addr + 64
	a.writeWord(succ, pack(0, false, true, false))

	a.place(addr, 64, 48)

	require.True(t, a.header(addr).isAlloc())
	require.EqualValues(t, 64, a.header(addr).payload(),
		"a 16-byte remainder is not a usable ordinary free block, so the whole block must be consumed")
	require.True(t, a.header(succ).isPrevAlloc())
}
