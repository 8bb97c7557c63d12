// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package heapcore implements the storage-space management engine of a
general purpose dynamic memory allocator: heap layout, in-band block
metadata, immediate coalescing, segregated explicit free lists with an
N-bounded best-fit search, and two space-squeezing small-request
strategies (a 16-byte minimal-block variant and a slab sub-allocator).

The terms MUST or MUST NOT, if/where used in the documentation of
Allocator, written in all caps as seen here, are a requirement for any
possible alternative implementations aiming for compatibility with this
one.

Region

The heap is a linear, contiguous byte span obtained from a RegionProvider,
which plays the role of a program-break extender (sbrk-like): the only
thing it can do is grow, monotonically, and report the start address of
the new tail. heapcore never shrinks a region and never asks it to move
existing bytes.

Blocks

A block is a contiguous span of the region whose size is a multiple of
16. Its header sits 8 bytes past a 16-byte boundary, so the payload
that follows the header is 16-byte aligned. Free blocks
carry a header and, except in the minimal shape, a footer; allocated
blocks carry only a header. The first byte of the region is a zero-size
allocated prologue footer, immediately followed by a zero-size allocated
epilogue header; the epilogue is relocated to the new tail every time the
region grows. All real blocks live between the prologue and the epilogue.

Addresses

An Addr is the byte offset, from the start of the region, of a block's
header. Addr zero is reserved (it is where the prologue sentinel lives)
and is used throughout this package as the "no block" / null value,
exactly as a handle of zero means "refers to no block" would in a
file-backed allocator.

Header word

Every block's header (and, where present, footer) is a single 64-bit
word. The low 4 bits are flags (is_special, alloc, prev_alloc, reserved);
the high 60 bits hold the block's total size (always a multiple of 16, so
its own low bits are already zero). When is_special is set, bits 3..63
instead hold a packed pointer: a block address is a multiple of 8 with
bit 3 set, so the pointer takes the reserved bit as well:

	 63                                   4 3  2  1  0
	+----------------------------------------+--+--+--+--+
	|                  size                  |rs|pa|al|is|
	+----------------------------------------+--+--+--+--+
	|             packed pointer                |pa|al|is|
	+-------------------------------------------+--+--+--+

Free blocks

Free blocks are organized into ten segregated, doubly linked, LIFO lists
(see sizeclass.go and freelist.go). Class 0 is reserved for 16-byte
minimal-shape blocks in the squish Mode, or for slab-block bookkeeping in
the slab Mode; these two strategies are alternates sharing bit 0 of the
header word for different purposes and are never combined in the same
heap (see Mode).

*/
package heapcore
