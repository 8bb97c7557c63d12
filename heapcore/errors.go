// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapcore

import "fmt"

// ErrINVAL reports an invalid argument supplied by the caller, e.g. an
// unknown Mode or a request size beyond what a single block can encode.
type ErrINVAL struct {
	Msg string
	Arg interface{}
}

func (e *ErrINVAL) Error() string {
	return fmt.Sprintf("%s: %v", e.Msg, e.Arg)
}

// ErrILSEQType classifies a structural ("ill-formed sequence") problem
// found while verifying a heap.
type ErrILSEQType int

const (
	ErrAdjacentFree      ErrILSEQType = iota // two free blocks next to each other
	ErrPrevAllocMismatch                     // successor's prev_alloc != predecessor's alloc
	ErrFooterMismatch                        // free block footer disagrees with its header
	ErrFreeListSize                          // a free block's size is out of its class bounds, or the lists' total length differs from the free-block count
	ErrFreeChaining                          // a free list's prev/next links are inconsistent
	ErrLostFreeBlock                         // a block looks free on heap scan but is in no list
	ErrUnlistedHead                          // a list head does not point at a free block
	ErrBadTag                                // unrecognized header encoding
	ErrSlabVector                            // a slab block's occupancy vector disagrees with reality
	ErrOther
)

// ErrILSEQ reports a structural heap invariant violation discovered by
// Allocator.Verify.
type ErrILSEQ struct {
	Type ErrILSEQType
	Addr Addr
	Arg  interface{}
}

func (e *ErrILSEQ) Error() string {
	return fmt.Sprintf("heapcore: ill-formed heap at %#x (%d): %v", e.Addr, e.Type, e.Arg)
}
