// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Segregated free lists: ten doubly linked LIFO lists keyed by size
// class, insert on free-or-coalesce, remove on allocate-or-coalesce.

package heapcore

// freeLists holds the head pointer of each of the ten segregated free
// lists. Class 0 is the minimal-shape class in squish Mode; in slab Mode
// it instead threads the list of slab blocks, full ones included (see
// slab.go).
type freeLists struct {
	heads [numClasses]Addr
}

// readAddr/writeAddr address a raw (unpacked) pointer field, used for the
// ordinary (non-minimal) free-list link words at offsets 8 and 16.
func (a *Allocator) readAddr(addr Addr) Addr  { return Addr(a.readWord(addr)) }
func (a *Allocator) writeAddr(addr Addr, v Addr) { a.writeWord(addr, word(v)) }

// linkPrev/linkNext/setLinkPrev/setLinkNext read or write the intrusive
// free-list pointers of the free block at addr (whose size is already
// known to the caller). A 16-byte squish block has no dedicated link
// words - its pointers are packed into the header and footer instead -
// so the minimal accessors in minimal.go are used for it.
func (a *Allocator) linkPrev(addr Addr, size uint64) Addr {
	if size == minBlockSize && a.mode == ModeSquish {
		return a.squishPrev(addr)
	}
	return a.readAddr(addr + wordSize)
}

func (a *Allocator) setLinkPrev(addr Addr, size uint64, v Addr) {
	if size == minBlockSize && a.mode == ModeSquish {
		a.setSquishPrev(addr, v)
		return
	}
	a.writeAddr(addr+wordSize, v)
}

func (a *Allocator) linkNext(addr Addr, size uint64) Addr {
	if size == minBlockSize && a.mode == ModeSquish {
		return a.squishNext(addr)
	}
	return a.readAddr(addr + 2*wordSize)
}

func (a *Allocator) setLinkNext(addr Addr, size uint64, v Addr) {
	if size == minBlockSize && a.mode == ModeSquish {
		a.setSquishNext(addr, v)
		return
	}
	a.writeAddr(addr+2*wordSize, v)
}

// flInsert adds the free block at addr (of the given size) to the head
// of its segregated list.
func (a *Allocator) flInsert(addr Addr, size uint64) {
	c := classOf(size)
	old := a.lists.heads[c]

	a.setLinkPrev(addr, size, 0)
	a.setLinkNext(addr, size, old)
	if old != 0 {
		a.setLinkPrev(old, a.totalSize(old), addr)
	}
	a.lists.heads[c] = addr
}

// flRemove removes the free block at addr (of the given size) from its
// segregated list.
func (a *Allocator) flRemove(addr Addr, size uint64) {
	c := classOf(size)
	p := a.linkPrev(addr, size)
	n := a.linkNext(addr, size)

	switch {
	case p == 0:
		a.lists.heads[c] = n
	default:
		a.setLinkNext(p, a.totalSize(p), n)
	}

	if n != 0 {
		a.setLinkPrev(n, a.totalSize(n), p)
	}
}
