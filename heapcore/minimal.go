// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The minimal-block (16-byte, "squish") variant: a free block too small
// to hold dedicated free-list link words packs its predecessor pointer
// into the header and its successor pointer into the footer.

package heapcore

// squishPrev/squishNext read the packed free-list pointers of a 16-byte
// minimal free block at addr. Both accessors mask the low 3 flag bits
// out before interpreting the rest as a pointer.
func (a *Allocator) squishPrev(addr Addr) Addr {
	return a.header(addr).ptr()
}

func (a *Allocator) squishNext(addr Addr) Addr {
	return a.readWord(a.footerAddr(addr, minBlockSize)).ptr()
}

// setSquishPrev/setSquishNext rewrite the packed pointer while preserving
// the three flag bits already present in the word.
func (a *Allocator) setSquishPrev(addr Addr, v Addr) {
	a.setHeader(addr, a.header(addr).withPayload(uint64(v)))
}

func (a *Allocator) setSquishNext(addr Addr, v Addr) {
	foff := a.footerAddr(addr, minBlockSize)
	a.writeWord(foff, a.readWord(foff).withPayload(uint64(v)))
}

// makeSquishFree writes a fresh 16-byte minimal free block's header and
// footer, with both packed pointers zeroed; the caller (flInsert) fills
// them in immediately afterwards.
func (a *Allocator) makeSquishFree(addr Addr, prevAlloc bool) {
	h := pack(0, true, false, prevAlloc)
	a.setHeader(addr, h)
	a.writeWord(a.footerAddr(addr, minBlockSize), h)
}
