// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibgc

// Host-facing cell and tag accessors. The host may read and write arena
// cells and the INFO/PTR bits of tags at will; the CONT and MARK bits and
// the free-list bookkeeping cells are collector-private and are not
// exposed for writing here.

// Cell returns the address-sized value stored in cell p.
func (a *Arena) Cell(p Addr) Addr { return a.cellAt(p) }

// SetCell stores v in cell p. The host is responsible for keeping the
// cell's PTR tag bit consistent with whether v is meant to be traced.
func (a *Arena) SetCell(p Addr, v Addr) { a.setCellAt(p, v) }

// Tag returns the full tag byte of cell p, including collector-private
// bits; HostBits masks out CONT and MARK for callers that only care about
// their own INFO bits and the PTR bit.
func (a *Arena) Tag(p Addr) byte { return a.tag(p) }

// HostBits returns p's INFO bits plus the PTR bit, with the
// collector-private CONT and MARK bits masked off.
func (a *Arena) HostBits(p Addr) byte {
	return a.tag(p) & (infoMask | ptrMask)
}

// IsPointer reports whether cell p is tagged PTR=1.
func (a *Arena) IsPointer(p Addr) bool { return a.tag(p)&ptrMask != 0 }

// SetPointer sets or clears p's PTR bit, leaving every other bit (INFO,
// CONT, MARK) untouched.
func (a *Arena) SetPointer(p Addr, isPtr bool) {
	t := a.tag(p)
	if isPtr {
		t |= ptrMask
	} else {
		t &^= ptrMask
	}
	a.setTag(p, t)
}

// Info returns p's host-defined INFO bits.
func (a *Arena) Info(p Addr) byte { return a.tag(p) & infoMask }

// SetInfo replaces p's host-defined INFO bits, leaving CONT/PTR/MARK
// untouched.
func (a *Arena) SetInfo(p Addr, info byte) {
	a.setTag(p, (a.tag(p) &^ infoMask) | (info & infoMask))
}

// ObjectLen returns the number of cells in the used object starting at p.
func (a *Arena) ObjectLen(p Addr) int64 { return a.objectAtoms(p) }

// AddrMask returns the sentinel value doubling as null pointer and
// free-list terminator.
func (a *Arena) AddrMask() Addr { return a.cfg.AddrMask }
