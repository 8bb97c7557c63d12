// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The bit-packed metadata word: size, alloc, prev_alloc and the
// is_special flag, or alternatively flags plus a packed pointer.

package heapcore

// word is one 64-bit block metadata word (a header or, where present, a
// footer). The low 3 bits are flags and bit 3 is reserved; bits 4..63
// hold a size (always a multiple of 16, so never colliding with the flag
// bits). When flagSpecial is set, bits 3..63 instead hold a packed Addr:
// block headers sit 8 bytes past a 16-byte boundary, so an Addr is a
// multiple of 8 and needs its bit 3.
type word uint64

const (
	flagSpecial word = 1 << 0 // squish: block size == 16; slab: slab block or slot
	flagAlloc   word = 1 << 1 // block is handed out to the host
	flagPrev    word = 1 << 2 // immediate predecessor block is allocated
	// bit 3 is reserved in a size word, always written as 0; in a
	// packed-pointer word it is the pointer's own bit 3.
	flagMask    = word(0xF)
	ptrFlagMask = word(0x7) // flag bits of a packed-pointer word
)

// pack builds a metadata word from a payload and the three flags. A size
// (multiple of 16) fills bits 4..63; a pointer, packed when special is
// set, is a multiple of 8 and fills bits 3..63, so packing never loses
// bits of either.
func pack(payload uint64, special, alloc, prevAlloc bool) word {
	w := word(payload) &^ flagMask
	if special {
		w = word(payload)&^ptrFlagMask | flagSpecial
	}
	if alloc {
		w |= flagAlloc
	}
	if prevAlloc {
		w |= flagPrev
	}
	return w
}

func (w word) isSpecial() bool { return w&flagSpecial != 0 }
func (w word) isAlloc() bool   { return w&flagAlloc != 0 }
func (w word) isPrevAlloc() bool { return w&flagPrev != 0 }

// payload returns bits 4..63, the size held by a word whose isSpecial is
// false.
func (w word) payload() uint64 { return uint64(w &^ flagMask) }

// ptr interprets bits 3..63 as a packed Addr (isSpecial must be true).
func (w word) ptr() Addr { return Addr(w &^ ptrFlagMask) }

// withAlloc returns w with the alloc flag replaced, payload untouched.
func (w word) withAlloc(v bool) word {
	if v {
		return w | flagAlloc
	}
	return w &^ flagAlloc
}

// withPrevAlloc returns w with the prev_alloc flag replaced, payload
// untouched.
func (w word) withPrevAlloc(v bool) word {
	if v {
		return w | flagPrev
	}
	return w &^ flagPrev
}

// withPayload returns w with bits 3..63 replaced by payload (a packed
// pointer), the three flags untouched.
func (w word) withPayload(payload uint64) word {
	return word(payload) &^ ptrFlagMask | (w & ptrFlagMask)
}
