// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Allocator: the top-level allocate/free/resize/zero-alloc surface, and
// Mode selection between the two small-request space-squeezing variants.

package heapcore

// Mode selects which of the two mutually exclusive small-request
// strategies a heap uses. Both variants reuse bit 0 of the header word
// for different purposes, so a heap is built for exactly one of them -
// there is no way to combine squish and slab blocks in a single region.
type Mode int

const (
	// ModeSquish packs free-list links into the header/footer of a
	// 16-byte block instead of allocating dedicated link words.
	ModeSquish Mode = iota
	// ModeSlab diverts requests of 15 bytes or fewer to a slab
	// sub-allocator instead of the ordinary block machinery.
	ModeSlab
)

func (m Mode) String() string {
	switch m {
	case ModeSquish:
		return "squish"
	case ModeSlab:
		return "slab"
	default:
		return "invalid"
	}
}

// Allocator is the storage-space manager described by this package: it
// owns one region and the bookkeeping (segregated free lists, slab
// state) needed to service allocate/free/resize/zero-alloc out of it.
//
// Allocator assumes single-threaded, non-reentrant use, per its
// concurrency model: a host targeting multiple goroutines MUST wrap every
// public method in a single mutual-exclusion region of its own.
type Allocator struct {
	region   RegionProvider
	mode     Mode
	lists    freeLists
	epilogue Addr // address of the current epilogue header

	busy bool // reentrancy guard, see enter/leave
}

// NewAllocator returns a new Allocator managing an empty region. region
// MUST report a size of zero before this call; heapcore does not support
// attaching to an already-populated region (there is no persisted state
// to recover, since the heap is process-lifetime).
func NewAllocator(region RegionProvider, mode Mode) (*Allocator, error) {
	if mode != ModeSquish && mode != ModeSlab {
		return nil, &ErrINVAL{"heapcore: invalid Mode", mode}
	}

	a := &Allocator{region: region, mode: mode}

	start := region.Grow(2 * wordSize)
	if start != 0 {
		return nil, &ErrINVAL{"heapcore: RegionProvider must start empty", start}
	}

	sentinel := pack(0, false, true, true) // size 0, alloc, prev_alloc
	a.writeWord(0, sentinel)               // prologue footer
	a.writeWord(wordSize, sentinel)        // epilogue header
	a.epilogue = wordSize
	return a, nil
}

// enter/leave guard against reentrant calls: no operation may be
// preempted while internal invariants are temporarily violated. This is
// the same nesting idea as MemFiler's BeginUpdate/EndUpdate counter,
// narrowed from "balance nested updates" to "refuse to run two public
// calls at once".
func (a *Allocator) enter() {
	if a.busy {
		panic("heapcore: reentrant call into Allocator")
	}
	a.busy = true
}

func (a *Allocator) leave() { a.busy = false }

// maxRequest is a conservative ceiling keeping "n + header, rounded up"
// arithmetic from overflowing uint64.
const maxRequest = ^uint64(0) >> 4

// Alloc allocates storage for at least n bytes and returns a 16-byte
// aligned Addr, or the null Addr (0) on exhaustion or when n == 0. In
// ModeSlab a request of 15 bytes or fewer instead returns a slot payload,
// which begins one byte into a 16-byte aligned slot.
func (a *Allocator) Alloc(n uint64) (Addr, error) {
	a.enter()
	defer a.leave()

	return a.doAlloc(n)
}

func (a *Allocator) doAlloc(n uint64) (Addr, error) {
	if n == 0 {
		return 0, nil
	}

	if n > maxRequest {
		return 0, &ErrINVAL{"heapcore: request too large", n}
	}

	if a.mode == ModeSlab && n <= slabSlotPayload {
		return a.slabAlloc(), nil
	}

	req := align16(n + headerSize)
	if req < minBlockSize {
		req = minBlockSize
	}

	addr, size, ok := a.findFit(req)
	if !ok {
		if addr, size, ok = a.extend(req); !ok {
			return 0, nil // exhaustion: null, not an error
		}
	}

	a.place(addr, size, req)
	return payloadAddr(addr), nil
}

// Free releases the block referred to by p. p must have been returned by
// Alloc/Calloc/Resize and not previously freed. Free(0) is a no-op.
func (a *Allocator) Free(p Addr) {
	a.enter()
	defer a.leave()

	a.doFree(p)
}

func (a *Allocator) doFree(p Addr) {
	if p == 0 {
		return
	}

	if a.mode == ModeSlab {
		// The byte immediately before every payload is, for a regular
		// block, the low-order byte of its header word (big-endian
		// layout puts the flags there); for a slab slot, it is the
		// slot's own one-byte mini-header. Both place is_special in
		// bit 0, so this one read disambiguates the two without
		// knowing the original request size.
		if a.readByte(p-1)&1 == 1 {
			a.slabFree(p)
			return
		}
	}

	a.freeBlock(blockAddr(p))
}

// Resize changes the size of the block referred to by p, preserving the
// leading min(n, old size) bytes, and returns the (possibly new) Addr.
// Resize(p, 0) frees p; Resize(0, n) allocates n bytes fresh.
func (a *Allocator) Resize(p Addr, n uint64) (Addr, error) {
	a.enter()
	defer a.leave()

	if n == 0 {
		a.doFree(p)
		return 0, nil
	}

	if p == 0 {
		return a.doAlloc(n)
	}

	oldCap := a.payloadCapacity(p)
	newAddr, err := a.doAlloc(n)
	if err != nil || newAddr == 0 {
		return 0, err
	}

	cp := n
	if oldCap < cp {
		cp = oldCap
	}

	if cp > 0 {
		buf := make([]byte, cp)
		a.region.ReadAt(buf, p)
		a.region.WriteAt(buf, newAddr)
	}

	a.doFree(p)
	return newAddr, nil
}

// Calloc allocates c*s bytes and zeroes them, rejecting multiplicative
// overflow with a null return.
func (a *Allocator) Calloc(c, s uint64) (Addr, error) {
	a.enter()
	defer a.leave()

	if c == 0 || s == 0 {
		return 0, nil
	}

	total := c * s
	if total/c != s {
		return 0, nil // overflow: null, not an error
	}

	addr, err := a.doAlloc(total)
	if err != nil || addr == 0 {
		return addr, err
	}

	zero := make([]byte, total)
	a.region.WriteAt(zero, addr)
	return addr, nil
}

// payloadCapacity returns the number of writable bytes available at p,
// the "old_payload_size" that Resize copies up to.
func (a *Allocator) payloadCapacity(p Addr) uint64 {
	if a.mode == ModeSlab && a.readByte(p-1)&1 == 1 {
		return slabSlotPayload
	}

	addr := blockAddr(p)
	return a.totalSize(addr) - headerSize
}
