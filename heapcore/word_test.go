// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heapcore

import "testing"

func TestPackSize(t *testing.T) {
	w := pack(4096, false, true, true)
	if g, e := w.payload(), uint64(4096); g != e {
		t.Fatalf("payload: got %d, want %d", g, e)
	}
	if !w.isAlloc() || !w.isPrevAlloc() || w.isSpecial() {
		t.Fatalf("flags: got %#x", w)
	}
}

func TestPackPtr(t *testing.T) {
	w := pack(uint64(0x1000), true, false, false)
	if g, e := w.ptr(), Addr(0x1000); g != e {
		t.Fatalf("ptr: got %#x, want %#x", g, e)
	}
	if !w.isSpecial() || w.isAlloc() || w.isPrevAlloc() {
		t.Fatalf("flags: got %#x", w)
	}
}

func TestWithers(t *testing.T) {
	w := pack(64, false, false, false)
	w = w.withAlloc(true)
	if !w.isAlloc() {
		t.Fatal("withAlloc(true) did not set alloc")
	}
	w = w.withPrevAlloc(true)
	if !w.isPrevAlloc() || w.payload() != 64 {
		t.Fatalf("withPrevAlloc corrupted payload: %#x", w)
	}
	w = w.withPayload(128)
	if w.payload() != 128 || !w.isAlloc() || !w.isPrevAlloc() {
		t.Fatalf("withPayload corrupted flags: %#x", w)
	}
}
