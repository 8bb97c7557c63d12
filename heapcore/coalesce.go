// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Coalescer: immediate merging with free neighbors on release.
//
// Unlike falloc.go's free2, this coalescer never special-cases "merging
// into the region tail": the heap always carries a permanent epilogue
// sentinel (see extend.go), so a successor block is always present and
// the four neighbor-alloc cases below are exhaustive on their own.

package heapcore

// freeBlock marks the block at addr free and merges it with whichever
// immediate neighbors are themselves free, then reinserts the resulting
// block into its segregated list.
func (a *Allocator) freeBlock(addr Addr) {
	size := a.totalSize(addr)
	pa := a.header(addr).isPrevAlloc()
	succAddr := addr + Addr(size)
	na := a.header(succAddr).isAlloc()

	finalAddr, finalSize, finalPrevAlloc := addr, size, pa

	if !na {
		succSize := a.totalSize(succAddr)
		a.flRemove(succAddr, succSize)
		finalSize += succSize
	}

	if !pa {
		prevAddr, prevSize, _ := a.prevBlock(addr)
		prevPrevAlloc := a.header(prevAddr).isPrevAlloc()
		a.flRemove(prevAddr, prevSize)
		finalAddr = prevAddr
		finalSize += prevSize
		finalPrevAlloc = prevPrevAlloc
	}

	a.writeFreeHeaderFooter(finalAddr, finalSize, finalPrevAlloc)
	a.flInsert(finalAddr, finalSize)
	a.setPrevAllocAt(finalAddr+Addr(finalSize), false)
	a.maybePunchHole(finalAddr, finalSize)
}

// punchThreshold is the smallest coalesced free block worth giving back
// to the OS; anything smaller isn't worth a syscall.
const punchThreshold = 4 * pgSize

// punchMargin keeps the block's own header, free-list links and footer
// untouched by rounding the punched range to whole pages strictly inside
// the block.
const punchMargin = 32

// maybePunchHole releases the physical backing of the interior of a
// large free block when the region supports it, leaving the in-band
// metadata at its head and tail intact.
func (a *Allocator) maybePunchHole(addr Addr, size uint64) {
	if size < punchThreshold {
		return
	}

	hp, ok := a.region.(HolePuncher)
	if !ok {
		return
	}

	start := (uint64(addr) + punchMargin + pgMask) &^ pgMask
	end := (uint64(addr) + size - punchMargin) &^ pgMask
	if end <= start {
		return
	}

	hp.PunchHole(Addr(start), end-start)
}
