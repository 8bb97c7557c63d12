// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// N-bounded best-fit search over the segregated free lists.

package heapcore

// fitScanLimit bounds how many sufficient candidates a single size class
// is searched through before the search settles for the best seen so
// far, trading optimality for a flat worst-case cost.
const fitScanLimit = 75

// findFit walks the segregated free lists starting at the class of req
// and returns the chosen block's address and size, already removed from
// its list. ok is false if no block anywhere is large enough.
func (a *Allocator) findFit(req uint64) (addr Addr, size uint64, ok bool) {
	avoidSliver := req == slabBlockSize
	floor := a.splitFloor()

	for c := classOf(req); c < numClasses; c++ {
		var bestAddr Addr
		var bestSize uint64
		seen := 0

		for cur := a.lists.heads[c]; cur != 0; cur = a.linkNext(cur, a.totalSize(cur)) {
			sz := a.totalSize(cur)
			if sz < req {
				continue
			}
			if avoidSliver {
				if rem := sz - req; rem != 0 && rem < floor {
					continue
				}
			}

			seen++
			if sz <= perfectFitThreshold(req) {
				a.flRemove(cur, sz)
				return cur, sz, true
			}

			if bestAddr == 0 || sz < bestSize {
				bestAddr, bestSize = cur, sz
			}

			if seen >= fitScanLimit {
				break
			}
		}

		if bestAddr != 0 {
			a.flRemove(bestAddr, bestSize)
			return bestAddr, bestSize, true
		}
	}

	return 0, 0, false
}

// perfectFitThreshold returns the largest block size still considered a
// "perfect" fit for req, short-circuiting the rest of the search.
// Requests below 256 bytes only accept an exact match; larger requests
// tolerate up to 5% slack (rounded to 16) to avoid combing through long
// lists for a marginally better split.
func perfectFitThreshold(req uint64) uint64 {
	if req < 256 {
		return req
	}
	slack := (req + 19) / 20 // ceil(req/20)
	return align16(req + slack)
}
