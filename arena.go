// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ibgc implements a small, non-moving, mark-sweep garbage collector
// for memory-constrained runtimes. It manages a single fixed-size byte
// arena carved into uniform cells, tracing reachability with
// Deutsch-Schorr-Waite pointer reversal (O(1) auxiliary stack) and
// reclaiming unmarked spans onto a coalescing free list.
//
// The collector does not discover roots, does not synchronize concurrent
// mutators, and does not move objects; all three are left to the host.
package ibgc

// Tag bits. CONT and MARK are collector-private; PTR is set by the host
// and read by Trace; the remaining bits, including INFO, are free for the
// host.
const (
	infoMask byte = 0xF1 // bits 0, 4, 5, 6, 7
	contMask byte = 1 << 1
	ptrMask  byte = 1 << 2
	markMask byte = 1 << 3
)

// Arena owns the byte buffer backing a collector instance: the cell region,
// the tag region, the free-list head and the current mark epoch. Addr
// values are the only thing callers ever hold; the backing buffer is never
// exposed directly.
type Arena struct {
	cfg     Config
	mem     []byte
	freeptr Addr
	markTag byte
}

// NewArena validates cfg and returns an Arena whose backing buffer has not
// yet been initialized; call Init before any other method.
func NewArena(cfg Config) (*Arena, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Arena{cfg: cfg, mem: make([]byte, cfg.MemBytes)}, nil
}

// Config returns the Arena's (validated) configuration.
func (a *Arena) Config() Config { return a.cfg }

// Init carves the cell region into one maximal free span and resets the
// mark epoch. It must be called exactly once before any other Arena
// method.
func (a *Arena) Init() {
	a.freeptr = a.cfg.AllocBase
	a.markTag = 0

	cells := (a.cfg.allocTop - a.cfg.AllocBase) / Addr(a.cfg.CellSize)
	a.makeFreeSpan(a.freeptr, int64(cells), a.cfg.AddrMask)
}

// tagAddr maps a cell address to the address of its tag byte:
// tag_addr(p) = (p >> log2(CellSize)) + TagBase.
func (a *Arena) tagAddr(p Addr) Addr {
	return (p >> a.cfg.log2CellSize) + a.cfg.tagBase
}

func (a *Arena) tag(p Addr) byte {
	return a.mem[a.tagAddr(p)]
}

func (a *Arena) setTag(p Addr, t byte) {
	a.mem[a.tagAddr(p)] = t
}

// mark sets p's mark bit to the current epoch.
func (a *Arena) mark(p Addr) {
	a.setTag(p, (a.tag(p) & ^markMask) | a.markTag)
}

// unmark sets p's mark bit to the opposite of the current epoch.
func (a *Arena) unmark(p Addr) {
	a.setTag(p, (a.tag(p) & ^markMask) | (a.markTag ^ markMask))
}

// isFree reports whether p's first-cell mark bit differs from the current
// epoch - "unreachable" between collections, "not yet visited" during one.
func (a *Arena) isFree(p Addr) bool {
	return a.tag(p)&markMask != a.markTag
}

func (a *Arena) hasCont(p Addr) bool {
	return a.tag(p)&contMask != 0
}

// cellAt reads the address-sized value stored in cell p.
func (a *Arena) cellAt(p Addr) Addr {
	off := int(p)
	sz := a.cfg.CellSize
	var v uint32
	for i := 0; i < sz; i++ {
		v |= uint32(a.mem[off+i]) << (8 * uint(i))
	}
	return Addr(v)
}

// setCellAt stores an address-sized value into cell p.
func (a *Arena) setCellAt(p Addr, v Addr) {
	off := int(p)
	sz := a.cfg.CellSize
	for i := 0; i < sz; i++ {
		a.mem[off+i] = byte(v >> (8 * uint(i)))
	}
}

// nextFree returns the free-list successor of the free span at p.
func (a *Arena) nextFree(p Addr) Addr {
	return a.cellAt(p)
}

// freeLen returns the length, in cells, of the free span at p.
func (a *Arena) freeLen(p Addr) int64 {
	if !a.hasCont(p) {
		return 1
	}
	return int64(a.cellAt(p + Addr(a.cfg.CellSize)))
}

// cellStride returns the configured cell width in bytes, as an Addr-typed
// stride for pointer arithmetic over cell addresses.
func (a *Arena) cellStride() Addr { return Addr(a.cfg.CellSize) }

// makeFreeSpan writes a free-span header at p: next points at succ, and if
// atoms > 1 the span's length is recorded in its second cell with CONT set.
func (a *Arena) makeFreeSpan(p Addr, atoms int64, succ Addr) {
	a.setCellAt(p, succ)
	switch {
	case atoms > 1:
		a.setCellAt(p+a.cellStride(), Addr(atoms))
		a.setTag(p, contMask|(a.markTag^markMask))
	default:
		a.setTag(p, a.markTag^markMask)
	}
}

// end returns the address one past the last cell of the span/object
// starting at p, given its length in cells.
func (a *Arena) end(p Addr, atoms int64) Addr {
	return p + Addr(atoms)*a.cellStride()
}
