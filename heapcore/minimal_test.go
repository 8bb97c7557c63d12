// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSquishLinkPackingPreservesFlags(t *testing.T) {
	a := newTestAllocator(t, ModeSquish)
	a.region.(*MemRegion).Grow(64)

	addr := Addr(wordSize)
	a.makeSquishFree(addr, true)

	require.True(t, a.header(addr).isSpecial())
	require.True(t, a.header(addr).isPrevAlloc())
	require.False(t, a.header(addr).isAlloc())

	a.setSquishPrev(addr, 0x40)
	a.setSquishNext(addr, 0x50)

	require.EqualValues(t, 0x40, a.squishPrev(addr))
	require.EqualValues(t, 0x50, a.squishNext(addr))

	// flags must survive the pointer rewrite
	require.True(t, a.header(addr).isSpecial())
	require.True(t, a.header(addr).isPrevAlloc())
	require.False(t, a.header(addr).isAlloc())
}

func TestMinimalBlockNextAdvancesBy16(t *testing.T) {
	a := newTestAllocator(t, ModeSquish)
	a.region.(*MemRegion).Grow(64)

	addr := Addr(wordSize)
	a.makeSquishFree(addr, true)
	require.EqualValues(t, addr+16, a.next(addr))
}
