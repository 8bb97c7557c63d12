// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Placer: turns a chosen free block into an allocated prefix plus an
// optional free remainder.

package heapcore

// place occupies req bytes of the free block at addr (already removed
// from its segregated list, of total size c), splitting off and
// re-inserting a free tail when the remainder is itself a usable block.
func (a *Allocator) place(addr Addr, c, req uint64) {
	prevAlloc := a.header(addr).isPrevAlloc()

	if c-req >= a.splitFloor() {
		a.setHeader(addr, pack(req, false, true, prevAlloc))

		tail := addr + Addr(req)
		tailSize := c - req
		a.writeFreeHeaderFooter(tail, tailSize, true)
		a.flInsert(tail, tailSize)

		a.setPrevAllocAt(a.next(tail), false)
		return
	}

	a.setHeader(addr, pack(c, false, true, prevAlloc))
	a.setPrevAllocAt(a.next(addr), true)
}
