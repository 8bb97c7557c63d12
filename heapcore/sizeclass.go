// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The size-class indexer: maps a block size to one of ten segregated
// free list classes.

package heapcore

import "math/bits"

const numClasses = 10

// classOf returns the segregated-list index owning blocks of the given
// size. floor(log2(size)) is obtained from a leading-zero count, then
// shifted down by log2(minBlockSize) == 4 and clamped to [0, numClasses).
// A size equal to minBlockSize (16) lands in class 0.
func classOf(size uint64) int {
	if size == 0 {
		return 0
	}

	floorLog2 := 63 - bits.LeadingZeros64(size)
	c := floorLog2 - 4
	switch {
	case c < 0:
		return 0
	case c >= numClasses:
		return numClasses - 1
	default:
		return c
	}
}

// classBound returns the smallest size that belongs to class i. Class
// numClasses-1 is unbounded above.
func classBound(i int) uint64 {
	return uint64(minBlockSize) << uint(i)
}
