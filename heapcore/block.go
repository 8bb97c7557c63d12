// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Block layout and traversal: header at block start, conditional footer,
// forward traversal by size, backward traversal via the predecessor's
// footer.

package heapcore

import "encoding/binary"

// Addr is a byte offset from the start of a heap's region. Addr zero is
// reserved for the prologue sentinel and doubles, throughout this
// package, as the "no block" / null value.
type Addr uint64

const (
	wordSize      = 8
	minBlockSize  = 16 // smallest possible block, squish mode only
	minPlainBlock = 32 // smallest non-minimal free block (header+prev+next+footer)
	headerSize    = wordSize
)

// align16 rounds n up to the next multiple of 16.
func align16(n uint64) uint64 { return (n + 15) &^ 15 }

// readWord/writeWord address one metadata word of the region.
func (a *Allocator) readWord(addr Addr) word {
	var b [wordSize]byte
	a.region.ReadAt(b[:], addr)
	return word(binary.BigEndian.Uint64(b[:]))
}

func (a *Allocator) writeWord(addr Addr, w word) {
	var b [wordSize]byte
	binary.BigEndian.PutUint64(b[:], uint64(w))
	a.region.WriteAt(b[:], addr)
}

func (a *Allocator) readByte(addr Addr) byte {
	var b [1]byte
	a.region.ReadAt(b[:], addr)
	return b[0]
}

func (a *Allocator) writeByte(addr Addr, v byte) {
	a.region.WriteAt([]byte{v}, addr)
}

// header returns the metadata word at the start of the block at addr.
func (a *Allocator) header(addr Addr) word { return a.readWord(addr) }

func (a *Allocator) setHeader(addr Addr, w word) { a.writeWord(addr, w) }

// footerAddr returns the address of the trailing word of a size-byte
// block starting at addr (valid for free, non-minimal blocks, and
// doubles as the "second word" address for a 16-byte minimal block).
func (a *Allocator) footerAddr(addr Addr, size uint64) Addr {
	return addr + Addr(size) - wordSize
}

// totalSize returns a block's total size in bytes. In squish Mode an
// is_special header means the block is exactly 16 bytes; in slab Mode an
// is_special header marks a slab block, whose size is always
// slabBlockSize.
func (a *Allocator) totalSize(addr Addr) uint64 {
	h := a.header(addr)
	if h.isSpecial() {
		if a.mode == ModeSquish {
			return minBlockSize
		}
		return slabBlockSize
	}
	return h.payload()
}

// next returns the address of the block immediately following addr.
func (a *Allocator) next(addr Addr) Addr {
	return addr + Addr(a.totalSize(addr))
}

// prevBlock returns the address and size of the block immediately
// preceding addr, and ok=false if that predecessor is allocated (and
// therefore carries no footer to read).
func (a *Allocator) prevBlock(addr Addr) (prev Addr, size uint64, ok bool) {
	h := a.header(addr)
	if h.isPrevAlloc() {
		return 0, 0, false
	}

	ftr := a.readWord(a.footerAddr(addr, 0)) // addr - wordSize
	if ftr.isSpecial() {
		size = minBlockSize
	} else {
		size = ftr.payload()
	}
	return addr - Addr(size), size, true
}

// splitFloor returns the smallest size that is itself a usable free
// block in the allocator's current mode: a squish block packs its
// free-list links into the header/footer and fits in minBlockSize, but
// an ordinary block needs room for a dedicated prev/next link pair on
// top of its header and footer, i.e. minPlainBlock. In ModeSlab, squish
// blocks never occur, so every split remainder must clear minPlainBlock.
func (a *Allocator) splitFloor() uint64 {
	if a.mode == ModeSquish {
		return minBlockSize
	}
	return minPlainBlock
}

// payloadAddr returns the address handed out to the host for a regular
// (non-slab) block starting at addr.
func payloadAddr(addr Addr) Addr { return addr + headerSize }

// blockAddr recovers a regular block's address from a payload pointer
// returned to the host.
func blockAddr(p Addr) Addr { return p - headerSize }

// writeFreeHeaderFooter (re)writes the header (and, where applicable,
// footer) of a free block, without touching its free-list links. A
// 16-byte block in squish Mode uses the packed minimal-block shape;
// every other free block gets a plain header and a mirrored footer.
func (a *Allocator) writeFreeHeaderFooter(addr Addr, size uint64, prevAlloc bool) {
	if size == minBlockSize && a.mode == ModeSquish {
		a.makeSquishFree(addr, prevAlloc)
		return
	}

	h := pack(size, false, false, prevAlloc)
	a.setHeader(addr, h)
	a.writeWord(a.footerAddr(addr, size), h)
}

// setPrevAllocAt flips only the prev_alloc bit of the block at addr,
// leaving its size/pointer payload and other flags untouched.
func (a *Allocator) setPrevAllocAt(addr Addr, v bool) {
	a.setHeader(addr, a.header(addr).withPrevAlloc(v))
}
