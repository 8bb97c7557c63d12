// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Region extender: grows the backing region and turns the new span into
// a free block at the heap's tail.

package heapcore

// regionChunkSize bounds how much a single Grow call asks for, so one
// huge request doesn't demand one huge contiguous Grow from the region
// provider.
const regionChunkSize = 4096

// extend grows the region, possibly across several chunks, until the
// block now sitting at the tail is at least req bytes, and returns it
// already removed from its segregated list. ok is false once the region
// provider itself is exhausted.
func (a *Allocator) extend(req uint64) (Addr, uint64, bool) {
	chunk := req
	if chunk > regionChunkSize {
		chunk = regionChunkSize
	}
	chunk = align16(chunk)
	if chunk < minBlockSize {
		chunk = minBlockSize
	}

	for {
		newBlockAddr := a.epilogue
		oldEpilogue := a.header(newBlockAddr)

		if a.region.Grow(chunk) == NoSpace {
			return 0, 0, false
		}

		a.epilogue = newBlockAddr + Addr(chunk)
		a.writeWord(a.epilogue, pack(0, false, true, false))

		a.writeFreeHeaderFooter(newBlockAddr, chunk, oldEpilogue.isPrevAlloc())
		a.freeBlock(newBlockAddr)

		if tailAddr, tailSize, ok := a.prevBlock(a.epilogue); ok && tailSize >= req {
			a.flRemove(tailAddr, tailSize)
			return tailAddr, tailSize, true
		}
	}
}
