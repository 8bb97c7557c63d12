// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The region provider: a monotonically growing byte span, analogous to a
// program-break extender.

package heapcore

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/cznic/fileutil"
	"github.com/cznic/mathutil"
)

// NoSpace is the Addr sentinel returned by RegionProvider.Grow on failure.
const NoSpace Addr = ^Addr(0)

// RegionProvider is the heap's only source of fresh memory. It models a
// monotonically growing, contiguous byte span: Grow never moves bytes
// already handed out, and the region can never shrink.
type RegionProvider interface {
	// Grow extends the region by n bytes (n is always a positive
	// multiple of 16) and returns the start address of the new span, or
	// NoSpace if the request cannot be satisfied.
	Grow(n uint64) Addr

	// ReadAt and WriteAt address bytes already handed out by Grow.
	ReadAt(b []byte, off Addr)
	WriteAt(b []byte, off Addr)
}

// HolePuncher is implemented by a RegionProvider that can release the
// physical backing of a byte range without changing the region's logical
// size or content guarantees. The coalescer calls it, if available, for
// very large coalesced free blocks.
type HolePuncher interface {
	PunchHole(off Addr, size uint64) error
}

const (
	pgBits = 12
	pgSize = 1 << pgBits
	pgMask = pgSize - 1
)

var zeroPage [pgSize]byte

// MemRegion is a process-memory-backed RegionProvider. Storage grows one
// fixed-size page at a time, addressed through a sparse page map, the
// same layout MemFiler uses for a persistent Filer - here repurposed for
// a heap that never persists.
type MemRegion struct {
	m    map[int64]*[pgSize]byte
	size int64
}

var _ RegionProvider = (*MemRegion)(nil)

// NewMemRegion returns a new, empty MemRegion.
func NewMemRegion() *MemRegion {
	return &MemRegion{m: map[int64]*[pgSize]byte{}}
}

// Grow implements RegionProvider.
func (r *MemRegion) Grow(n uint64) Addr {
	start := r.size
	r.size += int64(n)
	return Addr(start)
}

// ReadAt implements RegionProvider.
func (r *MemRegion) ReadAt(b []byte, off Addr) {
	o := int64(off)
	pgI := o >> pgBits
	pgO := int(o & pgMask)
	rem := len(b)
	for rem != 0 {
		pg := r.m[pgI]
		if pg == nil {
			pg = &zeroPage
		}
		nc := copy(b[:mathutil.Min(rem, pgSize-pgO)], pg[pgO:])
		pgI++
		pgO = 0
		rem -= nc
		b = b[nc:]
	}
}

// WriteAt implements RegionProvider.
func (r *MemRegion) WriteAt(b []byte, off Addr) {
	o := int64(off)
	pgI := o >> pgBits
	pgO := int(o & pgMask)
	rem := len(b)
	for rem != 0 {
		nc := mathutil.Min(rem, pgSize-pgO)
		if pgO == 0 && nc == pgSize && zeros(b[:nc]) {
			delete(r.m, pgI)
		} else {
			pg := r.m[pgI]
			if pg == nil {
				pg = new([pgSize]byte)
				r.m[pgI] = pg
			}
			copy(pg[pgO:], b[:nc])
		}
		pgI++
		pgO = 0
		rem -= nc
		b = b[nc:]
	}
}

// OSRegion is a RegionProvider backed by a real (typically unlinked)
// temp file, for heaps too large to comfortably keep entirely resident.
// It implements HolePuncher via github.com/cznic/fileutil, so the
// coalescer can give very large freed spans back to the OS while leaving
// the in-band free-list metadata untouched.
type OSRegion struct {
	f    *os.File
	size int64
}

var _ RegionProvider = (*OSRegion)(nil)
var _ HolePuncher = (*OSRegion)(nil)

// NewOSRegion creates an anonymous (unlinked) temp file in dir ("" for
// the default temp directory) to back the region.
func NewOSRegion(dir string) (*OSRegion, error) {
	f, err := ioutil.TempFile(dir, "heapcore-")
	if err != nil {
		return nil, err
	}

	if err := os.Remove(f.Name()); err != nil {
		f.Close()
		return nil, err
	}

	return &OSRegion{f: f}, nil
}

// Grow implements RegionProvider.
func (r *OSRegion) Grow(n uint64) Addr {
	start := r.size
	newSize := r.size + int64(n)
	if err := r.f.Truncate(newSize); err != nil {
		return NoSpace
	}

	r.size = newSize
	return Addr(start)
}

// ReadAt implements RegionProvider.
func (r *OSRegion) ReadAt(b []byte, off Addr) {
	if _, err := r.f.ReadAt(b, int64(off)); err != nil && err != io.EOF {
		panic(fmt.Errorf("heapcore: OSRegion.ReadAt: %v", err))
	}
}

// WriteAt implements RegionProvider.
func (r *OSRegion) WriteAt(b []byte, off Addr) {
	if _, err := r.f.WriteAt(b, int64(off)); err != nil {
		panic(fmt.Errorf("heapcore: OSRegion.WriteAt: %v", err))
	}
}

// PunchHole implements HolePuncher.
func (r *OSRegion) PunchHole(off Addr, size uint64) error {
	return fileutil.PunchHole(r.f, int64(off), int64(size))
}

// Close releases the backing file.
func (r *OSRegion) Close() error { return r.f.Close() }

// zeros reports whether b is entirely zero bytes, used by MemRegion-like
// providers deciding whether to keep a page resident.
func zeros(b []byte) bool { return bytes.Equal(b, zeroPage[:len(b)]) }
