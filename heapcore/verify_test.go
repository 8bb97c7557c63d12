// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyHealthyHeap(t *testing.T) {
	a := newTestAllocator(t, ModeSquish)

	var ptrs []Addr
	for i := 0; i < 40; i++ {
		p, err := a.Alloc(uint64(16 + i*4))
		require.NoError(t, err)
		ptrs = append(ptrs, p)
	}
	for i, p := range ptrs {
		if i%2 == 0 {
			a.Free(p)
		}
	}

	require.NoError(t, a.Verify(nil))
}

func TestVerifyCatchesAdjacentFreeBlocks(t *testing.T) {
	a := newTestAllocator(t, ModeSquish)
	a.region.(*MemRegion).Grow(160)

	b1 := Addr(wordSize)
	b2 := b1 + 32
	a.writeFreeHeaderFooter(b1, 32, true)
	a.writeFreeHeaderFooter(b2, 32, false) // never coalesced: invariant violation
	a.flInsert(b1, 32)
	a.flInsert(b2, 32)
	a.setHeader(b2+32, pack(0, false, true, false))
	a.epilogue = b2 + 32

	var found []error
	err := a.Verify(func(e error) bool {
		found = append(found, e)
		return true
	})
	require.NoError(t, err) // the logger kept going, so Verify itself reports success
	require.NotEmpty(t, found)
}

func TestVerifyCatchesUnlistedFreeBlock(t *testing.T) {
	a := newTestAllocator(t, ModeSquish)
	a.region.(*MemRegion).Grow(96)

	b1 := Addr(wordSize)
	a.writeFreeHeaderFooter(b1, 64, true)
	// deliberately never inserted into a segregated list: the heap scan
	// sees one free block, but the free lists account for zero.
	a.setHeader(b1+64, pack(0, false, true, false))
	a.epilogue = b1 + 64

	err := a.Verify(nil)
	require.Error(t, err)
}
