// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Verify walks a heap end to end and cross-checks it against its
// segregated free lists, in the spirit of falloc.go's Allocator.Verify.

package heapcore

// Verify checks the invariants listed in this package's block-layout
// documentation. Every problem found is reported through log; Verify
// stops early the first time log returns false, and otherwise returns
// once the whole heap and every free list have been walked. A block size
// that is zero or not a multiple of 16, or a cycle in a free list, always
// stops the walk. A nil log stops at the first problem, which Verify
// then returns.
func (a *Allocator) Verify(log func(error) bool) error {
	if log == nil {
		log = func(error) bool { return false }
	}
	return a.verify(log)
}

func (a *Allocator) verify(log func(error) bool) error {
	seenFree := make(map[Addr]bool)
	freeCount := 0
	prevWasFree := false
	prevAllocExpected := true // the prologue sentinel is always alloc=1

	for addr := Addr(wordSize); addr != a.epilogue; {
		h := a.header(addr)

		if h.isPrevAlloc() != prevAllocExpected {
			if !log(&ErrILSEQ{Type: ErrPrevAllocMismatch, Addr: addr}) {
				return &ErrILSEQ{Type: ErrPrevAllocMismatch, Addr: addr}
			}
		}

		size := a.totalSize(addr)
		if size == 0 || size%16 != 0 {
			err := &ErrILSEQ{Type: ErrBadTag, Addr: addr, Arg: size}
			log(err)
			return err
		}

		isFree := !h.isAlloc()
		if isFree {
			if prevWasFree {
				if !log(&ErrILSEQ{Type: ErrAdjacentFree, Addr: addr}) {
					return &ErrILSEQ{Type: ErrAdjacentFree, Addr: addr}
				}
			}

			freeCount++
			seenFree[addr] = true

			if size != minBlockSize || a.mode != ModeSquish {
				ftr := a.readWord(a.footerAddr(addr, size))
				if ftr.payload() != h.payload() || ftr.isPrevAlloc() != h.isPrevAlloc() {
					if !log(&ErrILSEQ{Type: ErrFooterMismatch, Addr: addr}) {
						return &ErrILSEQ{Type: ErrFooterMismatch, Addr: addr}
					}
				}
			}

			c := classOf(size)
			if size < classBound(c) || (c < numClasses-1 && size >= classBound(c+1)) {
				if !log(&ErrILSEQ{Type: ErrFreeListSize, Addr: addr, Arg: size}) {
					return &ErrILSEQ{Type: ErrFreeListSize, Addr: addr, Arg: size}
				}
			}
		}

		prevWasFree = isFree
		prevAllocExpected = h.isAlloc()
		addr = a.next(addr)
	}

	listed := 0
	firstClass := 0
	if a.mode == ModeSlab {
		firstClass = 1 // class 0 is repurposed as the slab list, which Verify does not walk
	}

	for c := firstClass; c < numClasses; c++ {
		visited := make(map[Addr]bool)
		prev := Addr(0)

		for cur := a.lists.heads[c]; cur != 0; {
			if visited[cur] {
				err := &ErrILSEQ{Type: ErrFreeChaining, Addr: cur, Arg: "cycle"}
				log(err)
				return err
			}
			visited[cur] = true

			if !seenFree[cur] {
				if !log(&ErrILSEQ{Type: ErrLostFreeBlock, Addr: cur}) {
					return &ErrILSEQ{Type: ErrLostFreeBlock, Addr: cur}
				}
			}

			sz := a.totalSize(cur)
			if a.linkPrev(cur, sz) != prev {
				if !log(&ErrILSEQ{Type: ErrFreeChaining, Addr: cur}) {
					return &ErrILSEQ{Type: ErrFreeChaining, Addr: cur}
				}
			}

			listed++
			prev = cur
			cur = a.linkNext(cur, sz)
		}
	}

	if listed != freeCount {
		err := &ErrILSEQ{Type: ErrFreeListSize, Arg: listed}
		if !log(err) {
			return err
		}
	}

	return nil
}
