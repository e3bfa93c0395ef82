// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibgc

// Alloc returns the starting address of a freshly allocated object of
// nCells cells, or Arena.Config().AddrMask if the arena is exhausted. No
// implicit collection is attempted; the host decides whether to Trace +
// Reclaim and retry. infoTag's bits outside the CONT/PTR/MARK bits are
// stored verbatim in the first cell's tag for host use; PTR starts clear.
//
// Algorithm: a first-fit walk of the free list (§4.2), splitting the
// chosen span at its low end when it is strictly larger than requested.
func (a *Arena) Alloc(nCells int64, infoTag byte) (Addr, error) {
	null := a.cfg.AddrMask
	if nCells < 1 {
		return null, &ErrINVAL{"Arena.Alloc: nCells", nCells}
	}

	prev := null
	p := a.freeptr
	for p != null && a.freeLen(p) < nCells {
		prev = p
		p = a.nextFree(p)
	}

	if p == null {
		return null, nil
	}

	flen := a.freeLen(p)
	succ := a.nextFree(p)

	if flen == nCells {
		a.spliceOut(prev, succ)
	} else {
		tail := p + Addr(nCells)*a.cellStride()
		a.makeFreeSpan(tail, flen-nCells, succ)
		a.spliceOut(prev, tail)
	}

	a.writeUsedTags(p, nCells, infoTag)
	return p, nil
}

// spliceOut points prev's successor (or freeptr, if prev is the list head
// sentinel) at succ.
func (a *Arena) spliceOut(prev, succ Addr) {
	if prev == a.cfg.AddrMask {
		a.freeptr = succ
		return
	}
	a.setCellAt(prev, succ)
}

// writeUsedTags tags a freshly carved nCells-cell object starting at p. The
// first cell carries infoTag's host bits, CONT iff more than one cell
// follows, and a mark bit that reads as "unreachable in the current epoch"
// until the next Trace finds it (§4.2's invariant).
func (a *Arena) writeUsedTags(p Addr, nCells int64, infoTag byte) {
	t := infoTag & infoMask
	if nCells > 1 {
		t |= contMask
	}
	t |= a.markTag ^ markMask
	a.setTag(p, t)

	stride := a.cellStride()
	for i := int64(1); i < nCells; i++ {
		cp := p + Addr(i)*stride
		if i == nCells-1 {
			a.setTag(cp, 0)
		} else {
			a.setTag(cp, contMask)
		}
	}
}
