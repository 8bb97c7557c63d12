// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlabAllocDisambiguatesFromRegularBlocks(t *testing.T) {
	a := newTestAllocator(t, ModeSlab)

	small, err := a.Alloc(8)
	require.NoError(t, err)
	require.NotZero(t, small)
	require.EqualValues(t, 1, a.readByte(small-1)&1, "a slab slot marks is_special in its mini-header byte")

	big, err := a.Alloc(64)
	require.NoError(t, err)
	require.NotZero(t, big)
	require.EqualValues(t, 0, a.readByte(big-1)&1, "a regular block's header low byte has is_special=0")
}

func TestSlabAllocFillsOneBlockThenCreatesAnother(t *testing.T) {
	a := newTestAllocator(t, ModeSlab)

	var slots []Addr
	for i := 0; i < slabSlots; i++ {
		p, err := a.Alloc(4)
		require.NoError(t, err)
		slots = append(slots, p)
	}

	head := a.lists.heads[0]
	require.EqualValues(t, slabFullMask, a.slabVector(head))

	_, err := a.Alloc(4)
	require.NoError(t, err)

	require.NotEqual(t, head, a.lists.heads[0], "a full block is no longer the slab list head")
	require.Equal(t, head, a.slabLink(a.lists.heads[0]), "the full block is kept, linked behind the new head")
}

func TestSlabFreeClearsBitAndAllowsReuse(t *testing.T) {
	a := newTestAllocator(t, ModeSlab)

	p1, err := a.Alloc(4)
	require.NoError(t, err)
	p2, err := a.Alloc(4)
	require.NoError(t, err)

	a.Free(p1)
	p3, err := a.Alloc(4)
	require.NoError(t, err)
	require.Equal(t, p1, p3, "freeing a slot should let the next allocation reuse it")
	_ = p2
}

func TestSlabDrainReturnsBlockToCoalescer(t *testing.T) {
	a := newTestAllocator(t, ModeSlab)

	var slots []Addr
	for i := 0; i < slabSlots; i++ {
		p, err := a.Alloc(4)
		require.NoError(t, err)
		slots = append(slots, p)
	}

	head := a.lists.heads[0]
	for _, p := range slots {
		a.Free(p)
	}

	require.Zero(t, a.lists.heads[0], "a fully drained slab block leaves the slab list empty")
	require.False(t, a.header(head).isSpecial(), "the drained block is re-tagged as an ordinary free block")
	require.NoError(t, a.Verify(nil))
}

func TestSlabRequestsAboveThresholdUseRegularBlocks(t *testing.T) {
	a := newTestAllocator(t, ModeSlab)

	p, err := a.Alloc(slabSlotPayload + 1)
	require.NoError(t, err)
	require.EqualValues(t, 0, a.readByte(p-1)&1)
}
